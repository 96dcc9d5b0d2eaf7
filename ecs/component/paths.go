package component

import "fmt"

func cutscenePath(id string, frame int) string {
	return fmt.Sprintf("cutscenes/%s/%d.png", id, frame)
}

func TilePath(asset string) string {
	return "tiles/" + asset + ".png"
}

func NPCPath(name, emotion string) string {
	return fmt.Sprintf("npcs/%s/%s.png", name, emotion)
}

func BGMPath(track string) string {
	return "ost/" + track + ".mp3"
}

func SFXPath(name string) string {
	return "sfx/" + name + ".wav"
}

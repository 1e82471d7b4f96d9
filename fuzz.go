package vuet

// Fuzz is the go-fuzz entry point: any input that compiles cleanly is
// interesting.
func Fuzz(data []byte) int {
	var _, err = NewBundle().
		AddTemplateString("fuzz.vue", string(data)).
		Compile()

	if err != nil {
		return 0
	}

	return 1
}

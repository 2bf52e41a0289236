package hangman

// Figure draws the gallows with one body part per wrong guess:
// head, body, left arm, right arm, left leg, right leg.
func Figure(wrong int) []string {
	part := func(n int, s string) string {
		if wrong > n {
			return s
		}
		return " "
	}
	return []string{
		"  ┌─────┐",
		"  │     │",
		"  │     " + part(0, "O"),
		"  │    " + part(2, "/") + part(1, "│") + part(3, `\`),
		"  │    " + part(4, "/") + " " + part(5, `\`),
		"  │",
		"──┴──",
	}
}

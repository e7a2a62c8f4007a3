package conversation

// splitMessage slices text into segments of at most maxLength characters,
// in order, with nothing dropped. Splitting is purely length-based.
func splitMessage(text string, maxLength int) []string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return []string{text}
	}

	segments := make([]string, 0, (len(runes)+maxLength-1)/maxLength)
	for i := 0; i < len(runes); i += maxLength {
		end := i + maxLength
		if end > len(runes) {
			end = len(runes)
		}

		segments = append(segments, string(runes[i:end]))
	}

	return segments
}

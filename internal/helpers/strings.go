package helpers

// SliceContains returns true if the slice contains the given string
func SliceContains(slice []string, element string) bool {
	for _, item := range slice {
		if item == element {
			return true
		}
	}
	return false
}

// AppendIfMissing appends the given string to the slice
// unless it is already in there
func AppendIfMissing(slice []string, element string) []string {
	if SliceContains(slice, element) == true {
		return slice
	}
	return append(slice, element)
}

package utils

import (
	"encoding/json"
	"strings"
)

// ImagesToString encodes a gallery as a JSON array for a text column.
func ImagesToString(images []string) string {
	if len(images) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(images)
	return string(data)
}

// StringToImages decodes a gallery column. Legacy rows stored a comma list.
func StringToImages(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(s), &images); err != nil {
		out := make([]string, 0)
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return images
}

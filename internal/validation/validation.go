package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	serverEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitRegex    = regexp.MustCompile(`[^0-9]`)

	linkedInPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[\w-]+/?$`),
		regexp.MustCompile(`^https?://(www\.)?linkedin\.com/pub/[\w-]+/[\w/]+/?$`),
		regexp.MustCompile(`^linkedin\.com/in/[\w-]+/?$`),
		regexp.MustCompile(`^linkedin\.com/pub/[\w-]+/[\w/]+/?$`),
	}
)

// ValidateEmail reports whether s looks like local@domain.tld with no whitespace.
func ValidateEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateServerEmail is the stricter check applied before a code is issued.
func ValidateServerEmail(s string) bool {
	return serverEmailRegex.MatchString(s)
}

func ValidateLinkedInURL(s string) bool {
	s = strings.TrimSpace(s)
	for _, pattern := range linkedInPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func CountLinkedInURLs(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if ValidateLinkedInURL(line) {
			count++
		}
	}
	return count
}

// SplitURLs splits newline-joined input into trimmed, non-blank lines.
func SplitURLs(text string) []string {
	lines := strings.Split(text, "\n")
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}

func NormalizeLinkedInURL(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}
	return s
}

// FilterDigits drops every character that is not an ASCII digit.
func FilterDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

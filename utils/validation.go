package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns  = regexp.MustCompile(`-{2,}`)
	htmlTags  = regexp.MustCompile(`<[^>]*>`)
	jsHandler = regexp.MustCompile(`on\w+="[^"]*"`)
)

// SanitizeString escapes HTML and strips tags and inline event handlers
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	sanitized = htmlTags.ReplaceAllString(sanitized, "")
	sanitized = jsHandler.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// ValidateEmail checks whether the string looks like an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks whether the string looks like a phone number
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// ValidateSlug checks a storefront slug: lowercase alphanumerics and single dashes
func ValidateSlug(slug string) bool {
	return len(slug) >= 3 && len(slug) <= 40 && slugRegex.MatchString(slug)
}

// ValidatePassword enforces the minimum password policy for tenant accounts
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// Slugify derives a storefront slug from a restaurant name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	)
	slug = replacer.Replace(slug)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email validation
func ValidateEmail(email string, allowedDomains []string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(allowedDomains) == 0 {
		return nil
	}

	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	for _, allowed := range allowedDomains {
		if domain == strings.ToLower(allowed) {
			return nil
		}
	}

	return fmt.Errorf("only @%s email addresses are allowed", strings.Join(allowedDomains, ", @"))
}

// Phone validation: 10 digits starting with 6-9, spaces and dashes ignored.
func ValidatePhone(phone string) error {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if len(cleaned) != 10 {
		return fmt.Errorf("phone must be 10 digits")
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("phone must contain digits only")
		}
	}
	if cleaned[0] < '6' || cleaned[0] > '9' {
		return fmt.Errorf("phone must start with 6-9")
	}
	return nil
}

// Password validation: at least 8 characters with uppercase, lowercase,
// digit and special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must include uppercase, lowercase, number, and special character")
	}

	return nil
}

// Image validation
const MaxImageSize = 16 * 1024 * 1024 // 16MB

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

func ValidateImageHeader(header *multipart.FileHeader) error {
	if header.Filename == "" {
		return fmt.Errorf("image filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("only PNG and JPG images are allowed")
	}

	if header.Size > MaxImageSize {
		return fmt.Errorf("image size %d bytes exceeds maximum allowed size of %d bytes", header.Size, MaxImageSize)
	}

	return nil
}

// Report field validation shared by the lost and found submission paths.
func ValidateReportFields(reporterName, itemName, description, location string) error {
	if strings.TrimSpace(reporterName) == "" {
		return fmt.Errorf("reporter name cannot be empty")
	}
	if strings.TrimSpace(itemName) == "" {
		return fmt.Errorf("item name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("location cannot be empty")
	}
	if len(itemName) > 100 {
		return fmt.Errorf("item name too long (max 100 characters)")
	}
	return nil
}

// Admin message validation
func ValidateMessageFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("message title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content cannot be empty")
	}
	if len(title) > 200 {
		return fmt.Errorf("message title too long (max 200 characters)")
	}
	return nil
}

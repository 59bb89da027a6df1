package handlers

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"shopfront/internal/models"
)

// Validation limits for form fields.
const (
	maxUsernameLen = 150
	maxEmailLen    = 254
	minPasswordLen = 8
	maxPasswordLen = 128
	maxCommentLen  = 2_000
)

// validateRegistration checks registration form inputs and returns all
// field-level errors found. Username uniqueness is checked separately
// against the database.
func validateRegistration(username, email, password string) []string {
	var errs []string

	username = strings.TrimSpace(username)
	if username == "" {
		errs = append(errs, "Username is required.")
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs = append(errs, "Username is too long (max 150 characters).")
	} else if strings.ContainsAny(username, " \t\n") {
		errs = append(errs, "Username may not contain whitespace.")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs = append(errs, "Email is required.")
	} else if utf8.RuneCountInString(email) > maxEmailLen {
		errs = append(errs, "Email is too long (max 254 characters).")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "Email address is not valid.")
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		errs = append(errs, "Password must be at least 8 characters.")
	} else if utf8.RuneCountInString(password) > maxPasswordLen {
		errs = append(errs, "Password is too long (max 128 characters).")
	}

	return errs
}

// validateReview parses and checks a review submission. Returns the
// parsed rating and the first error found, or "" when the submission is
// valid.
func validateReview(ratingStr, comment string) (int, string) {
	ratingStr = strings.TrimSpace(ratingStr)
	if ratingStr == "" {
		return 0, "Rating is required."
	}
	rating, err := strconv.Atoi(ratingStr)
	if err != nil {
		return 0, "Rating must be a number."
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return 0, "Rating must be between 1 and 5."
	}
	if strings.TrimSpace(comment) == "" {
		return 0, "Comment is required."
	}
	if utf8.RuneCountInString(comment) > maxCommentLen {
		return 0, "Comment is too long (max 2,000 characters)."
	}
	return rating, ""
}

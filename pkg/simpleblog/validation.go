package simpleblog

import "fmt"

// Field validation runs before any mutation is attempted and returns every
// failing field at once.

type postFields struct {
	Title       string
	Description string
	Content     string
	CategoryID  int64
}

func validatePostFields(f postFields) error {
	var errs ValidationError
	if f.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if f.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}
	if f.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "required"})
	}
	if f.CategoryID <= 0 {
		errs = append(errs, FieldError{Field: "category_id", Message: "required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCommentContent(content string) error {
	var errs ValidationError
	if content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "required"})
	}
	if len(content) > MaxCommentContentLen {
		errs = append(errs, FieldError{
			Field:   "content",
			Message: fmt.Sprintf("must be at most %d characters", MaxCommentContentLen),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAuthorName(name string) error {
	var errs ValidationError
	if name == "" {
		errs = append(errs, FieldError{Field: "author_user_name", Message: "required"})
	}
	if len(name) > MaxAuthorNameLen {
		errs = append(errs, FieldError{
			Field:   "author_user_name",
			Message: fmt.Sprintf("must be at most %d characters", MaxAuthorNameLen),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

package api

import (
	"path"
	"strings"
	"unicode"
)

// sanitizeUploadFilename strips any client-supplied directory components and
// folds the name down to printable ASCII so it is safe to use as a storage
// path segment. Accented Latin letters map to their base letter; anything
// else non-ASCII becomes a dash. Plain ASCII names pass through unchanged,
// which keeps the deterministic filename-to-path mapping intact.
func sanitizeUploadFilename(filename string) string {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if filename == "." || filename == "/" {
		return ""
	}

	return strings.Map(func(r rune) rune {
		if r < 128 && unicode.IsPrint(r) {
			return r
		}
		if folded, ok := foldLatin(r); ok {
			return folded
		}
		return '-'
	}, filename)
}

// foldLatin maps common accented Latin letters onto their ASCII base.
func foldLatin(r rune) (rune, bool) {
	switch {
	case r >= 'À' && r <= 'Å':
		return 'A', true
	case r >= 'à' && r <= 'å':
		return 'a', true
	case r >= 'È' && r <= 'Ë':
		return 'E', true
	case r >= 'è' && r <= 'ë':
		return 'e', true
	case r >= 'Ì' && r <= 'Ï':
		return 'I', true
	case r >= 'ì' && r <= 'ï':
		return 'i', true
	case r >= 'Ò' && r <= 'Ö':
		return 'O', true
	case r >= 'ò' && r <= 'ö':
		return 'o', true
	case r >= 'Ù' && r <= 'Ü':
		return 'U', true
	case r >= 'ù' && r <= 'ü':
		return 'u', true
	case r == 'Ç':
		return 'C', true
	case r == 'ç':
		return 'c', true
	case r == 'Ñ':
		return 'N', true
	case r == 'ñ':
		return 'n', true
	}
	return 0, false
}

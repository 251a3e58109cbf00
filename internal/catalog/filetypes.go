package catalog

import (
	"path/filepath"
	"strings"
)

// FileType constants
const (
	FileTypePDF  = "pdf"
	FileTypeTXT  = "txt"
	FileTypeMD   = "md"
	FileTypeDOCX = "docx"
	FileTypeXLSX = "xlsx"
	FileTypeCSV  = "csv"
	FileTypePNG  = "png"
	FileTypeJPG  = "jpg"
	FileTypeWEBP = "webp"
)

// DetectFileType detects file type from filename
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FileTypePDF
	case ".txt":
		return FileTypeTXT
	case ".md", ".markdown":
		return FileTypeMD
	case ".docx", ".doc":
		return FileTypeDOCX
	case ".xlsx", ".xls":
		return FileTypeXLSX
	case ".csv":
		return FileTypeCSV
	case ".png":
		return FileTypePNG
	case ".jpg", ".jpeg":
		return FileTypeJPG
	case ".webp":
		return FileTypeWEBP
	case "":
		return ""
	default:
		return ext[1:] // remove leading dot
	}
}

// IsAllowed checks whether a filename matches the upload allow-list.
// This is a picker hint only; the backend decides what it accepts.
func IsAllowed(filename string) bool {
	allowed := map[string]bool{
		FileTypePDF:  true,
		FileTypeTXT:  true,
		FileTypeMD:   true,
		FileTypeDOCX: true,
		FileTypeXLSX: true,
		FileTypeCSV:  true,
		FileTypePNG:  true,
		FileTypeJPG:  true,
		FileTypeWEBP: true,
	}
	return allowed[DetectFileType(filename)]
}

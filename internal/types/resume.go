package types

import "fmt"

// ResumeFile is a resume selected for upload to the matching service.
type ResumeFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the file size in bytes.
func (f *ResumeFile) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

func (f *ResumeFile) String() string {
	if f == nil {
		return "<no file>"
	}
	return fmt.Sprintf("%s (%s, %d bytes)", f.Name, f.ContentType, len(f.Data))
}

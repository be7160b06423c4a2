package types

import "testing"

func TestClassifyAttachment(t *testing.T) {
	tests := []struct {
		name         string
		originalName string
		storedKey    string
		want         AttachmentKind
	}{
		{"png", "photo.png", "abc.png", AttachmentKindImage},
		{"jpg uppercase", "PHOTO.JPG", "abc.jpg", AttachmentKindImage},
		{"jpeg", "scan.jpeg", "abc.jpeg", AttachmentKindImage},
		{"gif", "anim.gif", "abc.gif", AttachmentKindImage},
		{"webp", "pic.webp", "abc.webp", AttachmentKindImage},
		{"pdf", "report.pdf", "abc.pdf", AttachmentKindDocument},
		{"docx", "notes.docx", "abc.docx", AttachmentKindDocument},
		{"txt", "readme.txt", "abc.txt", AttachmentKindDocument},
		{"no extension", "README", "abc", AttachmentKindDocument},
		{"falls back to stored key", "upload", "abc.png", AttachmentKindImage},
		{"original name wins", "photo.png", "abc.pdf", AttachmentKindImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAttachment(tt.originalName, tt.storedKey)
			if got != tt.want {
				t.Errorf("ClassifyAttachment(%q, %q) = %v, want %v", tt.originalName, tt.storedKey, got, tt.want)
			}
		})
	}
}

func TestAttachmentUploadName(t *testing.T) {
	a := &Attachment{StoredKey: "uuid-1234.pdf", OriginalName: "report.pdf"}
	if got := a.UploadName(); got != "report.pdf" {
		t.Errorf("UploadName() = %q, want %q", got, "report.pdf")
	}

	// 无原始文件名时用暂存 key 的文件名部分
	a = &Attachment{StoredKey: "uuid-1234.pdf"}
	if got := a.UploadName(); got != "uuid-1234.pdf" {
		t.Errorf("UploadName() = %q, want %q", got, "uuid-1234.pdf")
	}
}

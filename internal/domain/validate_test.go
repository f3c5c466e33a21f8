package domain

import (
	"errors"
	"testing"
)

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Field != field {
		t.Fatalf("expected field %q, got %q", field, valErr.Field)
	}
}

func TestUserInsertValidate(t *testing.T) {
	tests := []struct {
		name      string
		insert    UserInsert
		wantField string
	}{
		{"valid", UserInsert{Username: "ana", DisplayName: "Ana"}, ""},
		{"missing username", UserInsert{DisplayName: "Ana"}, "username"},
		{"blank username", UserInsert{Username: "  ", DisplayName: "Ana"}, "username"},
		{"missing display name", UserInsert{Username: "ana"}, "displayName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.insert.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertValidationError(t, err, tt.wantField)
		})
	}
}

func TestUserInsertDefaultsRole(t *testing.T) {
	in := UserInsert{Username: "ana", DisplayName: "Ana"}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Role != DefaultUserRole {
		t.Fatalf("expected role %q, got %q", DefaultUserRole, in.Role)
	}

	in = UserInsert{Username: "ana", DisplayName: "Ana", Role: "Admin"}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Role != "Admin" {
		t.Fatalf("explicit role overwritten: %q", in.Role)
	}
}

func TestProjectInsertValidate(t *testing.T) {
	tests := []struct {
		name      string
		insert    ProjectInsert
		wantField string
	}{
		{"valid", ProjectInsert{Name: "Lab A", OwnerID: 1}, ""},
		{"valid without description", ProjectInsert{Name: "Lab A", OwnerID: 1}, ""},
		{"blank name", ProjectInsert{Name: " ", OwnerID: 1}, "name"},
		{"missing owner", ProjectInsert{Name: "Lab A"}, "ownerId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.insert.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertValidationError(t, err, tt.wantField)
		})
	}
}

func TestNoteInsertValidate(t *testing.T) {
	tests := []struct {
		name      string
		insert    NoteInsert
		wantField string
	}{
		{"valid", NoteInsert{Title: "Obs 1", ExperimentID: 1, AuthorID: 1}, ""},
		{"blank title", NoteInsert{Title: "\t", ExperimentID: 1, AuthorID: 1}, "title"},
		{"missing experiment", NoteInsert{Title: "Obs 1", AuthorID: 1}, "experimentId"},
		{"missing author", NoteInsert{Title: "Obs 1", ExperimentID: 1}, "authorId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.insert.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertValidationError(t, err, tt.wantField)
		})
	}
}

func TestAttachmentInsertValidate(t *testing.T) {
	valid := AttachmentInsert{
		FileName: "scan.png",
		FileSize: 3,
		FileType: "image/png",
		FileData: []byte{1, 2, 3},
		NoteID:   1,
	}

	tests := []struct {
		name      string
		mutate    func(in *AttachmentInsert)
		maxBytes  int64
		wantField string
	}{
		{"valid", func(in *AttachmentInsert) {}, 0, ""},
		{"valid under cap", func(in *AttachmentInsert) {}, 3, ""},
		{"missing file name", func(in *AttachmentInsert) { in.FileName = "" }, 0, "fileName"},
		{"missing mime type", func(in *AttachmentInsert) { in.FileType = " " }, 0, "fileType"},
		{"zero size", func(in *AttachmentInsert) { in.FileSize = 0 }, 0, "fileSize"},
		{"negative size", func(in *AttachmentInsert) { in.FileSize = -1 }, 0, "fileSize"},
		{"empty payload", func(in *AttachmentInsert) { in.FileData = nil }, 0, "fileData"},
		{"missing note", func(in *AttachmentInsert) { in.NoteID = 0 }, 0, "noteId"},
		{"over cap", func(in *AttachmentInsert) {}, 2, "fileData"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.FileData = append([]byte(nil), valid.FileData...)
			tt.mutate(&in)
			err := in.Validate(tt.maxBytes)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertValidationError(t, err, tt.wantField)
		})
	}
}

func TestPatchValidate(t *testing.T) {
	empty := ""
	blank := "  "
	name := "Trial 2"
	badID := int64(0)
	goodID := int64(7)

	if err := (&ProjectPatch{}).Validate(); err != nil {
		t.Fatalf("empty patch must be valid: %v", err)
	}
	if err := (&ProjectPatch{Name: &blank}).Validate(); err == nil {
		t.Fatal("blank name must be rejected")
	}
	if err := (&ExperimentPatch{Name: &name, ProjectID: &goodID}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&ExperimentPatch{ProjectID: &badID}).Validate(); err == nil {
		t.Fatal("non-positive parent must be rejected")
	}
	if err := (&NotePatch{Title: &empty}).Validate(); err == nil {
		t.Fatal("empty title must be rejected")
	}
	// Clearing content is legitimate: an explicit empty value, not an omission.
	if err := (&NotePatch{Content: &empty}).Validate(); err != nil {
		t.Fatalf("clearing content must be allowed: %v", err)
	}
}

func TestCollaboratorInsertValidate(t *testing.T) {
	in := CollaboratorInsert{ProjectID: 1, UserID: 2}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Role != DefaultCollaboratorRole {
		t.Fatalf("expected default role %q, got %q", DefaultCollaboratorRole, in.Role)
	}

	if err := (&CollaboratorInsert{UserID: 2}).Validate(); err == nil {
		t.Fatal("missing project must be rejected")
	}
	if err := (&CollaboratorInsert{ProjectID: 1}).Validate(); err == nil {
		t.Fatal("missing user must be rejected")
	}
}

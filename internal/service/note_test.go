package service

import (
	"context"
	"errors"
	"testing"

	"emocare/api/internal/models"
)

func newNoteFixture(t *testing.T) (*NoteService, *TagService) {
	t.Helper()
	users := &fakeUserStore{}
	ctx := context.Background()
	_ = users.Create(ctx, models.User{ID: "d1", Role: models.RoleDoctor})
	_ = users.Create(ctx, models.User{ID: "d2", Role: models.RoleDoctor})
	_ = users.Create(ctx, models.User{ID: "p1", Role: models.RolePatient})
	_ = users.Create(ctx, models.User{ID: "p2", Role: models.RolePatient})

	return NewNoteService(&fakeNoteStore{}, users), NewTagService(&fakeTagStore{}, users)
}

func TestNoteLifecycle(t *testing.T) {
	notes, _ := newNoteFixture(t)
	ctx := context.Background()

	note, err := notes.Create(ctx, "p1", "d1", "sleeping poorly this week")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Only the authoring doctor may edit.
	if _, err := notes.Update(ctx, note.ID, "d2", "changed"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for other doctor", err)
	}

	updated, err := notes.Update(ctx, note.ID, "d1", "sleeping better now")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Note != "sleeping better now" {
		t.Fatalf("note = %q", updated.Note)
	}

	if err := notes.Delete(ctx, note.ID, "d2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden on foreign delete", err)
	}
	if err := notes.Delete(ctx, note.ID, "d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestNoteCreateValidatesRoles(t *testing.T) {
	notes, _ := newNoteFixture(t)
	ctx := context.Background()

	if _, err := notes.Create(ctx, "d2", "d1", "x"); !errors.Is(err, ErrNotPatient) {
		t.Fatalf("err = %v, want ErrNotPatient", err)
	}
	if _, err := notes.Create(ctx, "p1", "p2", "x"); !errors.Is(err, ErrNotDoctor) {
		t.Fatalf("err = %v, want ErrNotDoctor", err)
	}
	if _, err := notes.Create(ctx, "p1", "d1", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for empty note", err)
	}
}

func TestNoteListAuthorization(t *testing.T) {
	notes, _ := newNoteFixture(t)
	ctx := context.Background()

	if _, err := notes.Create(ctx, "p1", "d1", "first"); err != nil {
		t.Fatalf("create: %v", err)
	}

	owner := models.User{ID: "p1", Role: models.RolePatient}
	own, err := notes.ListByPatient(ctx, "p1", owner)
	if err != nil {
		t.Fatalf("own list: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("own = %d, want 1", len(own))
	}

	other := models.User{ID: "p2", Role: models.RolePatient}
	if _, err := notes.ListByPatient(ctx, "p1", other); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestTagDuplicateRejected(t *testing.T) {
	_, tags := newNoteFixture(t)
	ctx := context.Background()

	if _, err := tags.Create(ctx, "p1", "d1", "high-risk"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := tags.Create(ctx, "p1", "d1", "high-risk"); !errors.Is(err, ErrTagExists) {
		t.Fatalf("err = %v, want ErrTagExists", err)
	}

	// The same tag text from a different doctor is a distinct row.
	if _, err := tags.Create(ctx, "p1", "d2", "high-risk"); err != nil {
		t.Fatalf("create by other doctor: %v", err)
	}

	all, err := tags.ListByPatient(ctx, "p1", models.User{ID: "d1", Role: models.RoleDoctor})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("tags = %d, want 2", len(all))
	}

	mine, err := tags.ListByPatientAndDoctor(ctx, "p1", "d1")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("mine = %d, want 1", len(mine))
	}
}

func TestTagRemoval(t *testing.T) {
	_, tags := newNoteFixture(t)
	ctx := context.Background()

	tag, err := tags.Create(ctx, "p1", "d1", "follow-up")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := tags.RemoveByID(ctx, tag.ID, "d2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for foreign doctor", err)
	}
	if err := tags.RemoveByName(ctx, "p1", "d1", "follow-up"); err != nil {
		t.Fatalf("remove by name: %v", err)
	}

	if _, err := tags.Create(ctx, "p1", "d1", "follow-up"); err != nil {
		t.Fatalf("recreate after removal: %v", err)
	}
}

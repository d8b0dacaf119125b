package derive

import (
	"testing"

	"taskdeck/internal/models"
)

func TestRelationshipMatchesNameCaseInsensitively(t *testing.T) {
	member := models.Member{ID: "m1", Name: "Jane Doe", Email: "jane@example.com"}
	tasks := []models.Task{
		{ID: "t1", AssignedTo: "  JANE DOE "},
		{ID: "t2", AssignedTo: "jane@example.com"},
		{ID: "t3", AssignedToID: "m1"},
		{ID: "t4", RelatedTo: "Jane Doe"},
		{ID: "t5", AssignedTo: "Someone Else"},
	}

	assigned, related := Relationship(member, tasks)
	if len(assigned) != 3 {
		t.Fatalf("assigned = %d tasks, want 3", len(assigned))
	}
	if len(related) != 1 || related[0].ID != "t4" {
		t.Fatalf("related = %v, want just t4", related)
	}
}

func TestRelationshipAssignedTakesPrecedence(t *testing.T) {
	member := models.Member{Name: "Jane Doe"}
	tasks := []models.Task{
		{ID: "t1", AssignedTo: "jane doe", RelatedTo: "Jane Doe"},
	}

	assigned, related := Relationship(member, tasks)
	if len(assigned) != 1 {
		t.Fatalf("assigned = %d tasks, want 1", len(assigned))
	}
	if len(related) != 0 {
		t.Fatalf("related = %d tasks, want 0: sets must be disjoint", len(related))
	}
}

func TestRelationshipEmptyFieldsNeverMatch(t *testing.T) {
	member := models.Member{Name: ""}
	tasks := []models.Task{
		{ID: "t1", AssignedTo: ""},
		{ID: "t2", RelatedTo: "   "},
	}

	assigned, related := Relationship(member, tasks)
	if len(assigned) != 0 || len(related) != 0 {
		t.Fatalf("empty member matched: assigned=%v related=%v", assigned, related)
	}
}

func TestMergeRelationshipTagsAndOrder(t *testing.T) {
	assigned := []models.Task{{ID: "a1"}}
	related := []models.Task{{ID: "r1"}, {ID: "r2"}}

	merged := MergeRelationship(assigned, related)
	if len(merged) != 3 {
		t.Fatalf("merged = %d tasks, want 3", len(merged))
	}
	if merged[0].ID != "a1" || merged[0].Relation != RelationAssigned {
		t.Errorf("merged[0] = %q/%v, want a1/assigned", merged[0].ID, merged[0].Relation)
	}
	if merged[2].ID != "r2" || merged[2].Relation != RelationRelated {
		t.Errorf("merged[2] = %q/%v, want r2/related", merged[2].ID, merged[2].Relation)
	}
}

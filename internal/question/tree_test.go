package question

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"intro-to_go.json":   "Intro To Go",
		"NETWORKS.json":      "Networks",
		"week_3-review.json": "Week 3 Review",
		"plain.json":         "Plain",

		"slide-6-3-w3vgp4ku5o.json": "Slide 6 3 W3Vgp4Ku5O",
		"2nd_edition.json":          "2Nd Edition",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) got=%q want=%q", in, got, want)
		}
	}
}

func TestBuildTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(root, "b-list.json"), `[{"question":"1"},{"question":"2"}]`)
	writeFile(t, filepath.Join(root, "a_single.json"), `{"question":"q","options":["x","y"],"answer":[0]}`)
	writeFile(t, filepath.Join(root, "index.json"), `[{"question":"hidden"}]`)
	writeFile(t, filepath.Join(root, ".hidden.json"), `[{"question":"hidden"}]`)
	writeFile(t, filepath.Join(root, ".cache", "done_files.json"), `["a_single.json"]`)
	writeFile(t, filepath.Join(root, "notes.txt"), `not a question file`)
	writeFile(t, filepath.Join(root, "broken.json"), `{"question":`)
	writeFile(t, filepath.Join(root, "unit", "wrapped.json"), `{"questions":[{"question":"1"},{"question":"2"},{"question":"3"}]}`)
	writeFile(t, filepath.Join(root, "unit", "index.json"), `[]`)

	tree := BuildTree(root, root)
	if tree.Name != "data" || tree.Type != NodeFolder {
		t.Fatalf("unexpected root: %+v", tree)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 children, got %d: %+v", len(tree.Children), tree.Children)
	}

	single, ok := tree.Children[0].(*File)
	if !ok {
		t.Fatalf("expected first child to be a file, got %T", tree.Children[0])
	}
	if single.Filename != "a_single.json" || single.Name != "A Single" || single.QuestionCount != 1 {
		t.Fatalf("unexpected single-question node: %+v", single)
	}
	if single.RelativePath != "a_single.json" {
		t.Fatalf("unexpected relative path %q", single.RelativePath)
	}

	list := tree.Children[1].(*File)
	if list.Filename != "b-list.json" || list.QuestionCount != 2 {
		t.Fatalf("unexpected list node: %+v", list)
	}

	unit, ok := tree.Children[2].(*Folder)
	if !ok {
		t.Fatalf("expected folder, got %T", tree.Children[2])
	}
	if unit.Name != "unit" || len(unit.Children) != 1 {
		t.Fatalf("unexpected folder: %+v", unit)
	}
	wrapped := unit.Children[0].(*File)
	if wrapped.RelativePath != "unit/wrapped.json" || wrapped.QuestionCount != 3 {
		t.Fatalf("unexpected nested file: %+v", wrapped)
	}
}

func TestBuildTreeJSON(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, filepath.Join(root, "empty", "readme.md"), "x")

	b, err := json.Marshal(BuildTree(root, root))
	if err != nil {
		t.Fatalf("marshal tree: %v", err)
	}
	var got struct {
		Type     string `json:"type"`
		Children []struct {
			Type     string            `json:"type"`
			Children []json.RawMessage `json:"children"`
		} `json:"children"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal tree: %v", err)
	}
	if got.Type != "folder" || len(got.Children) != 1 || got.Children[0].Type != "folder" {
		t.Fatalf("unexpected tree json: %s", b)
	}
	if got.Children[0].Children == nil {
		t.Fatalf("empty folder should encode children as [], got %s", b)
	}
}

func TestBuildTreeUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced here")
	}
	root := filepath.Join(t.TempDir(), "data")
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "a.json"), `[]`)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(locked, 0o755)

	tree := BuildTree(root, root)
	if len(tree.Children) != 1 {
		t.Fatalf("expected locked folder node, got %+v", tree.Children)
	}
	folder := tree.Children[0].(*Folder)
	if len(folder.Children) != 0 {
		t.Fatalf("expected no children for unreadable folder, got %+v", folder.Children)
	}
}

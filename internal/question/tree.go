package question

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	NodeFolder = "folder"
	NodeFile   = "file"

	indexFilename = "index.json"
)

// Node is either a *Folder or a *File.
type Node interface {
	Kind() string
}

type Folder struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Children []Node `json:"children"`
}

func (f *Folder) Kind() string { return NodeFolder }

type File struct {
	Name          string `json:"name"`
	Filename      string `json:"filename"`
	Path          string `json:"path"`
	RelativePath  string `json:"relative_path"`
	Type          string `json:"type"`
	QuestionCount int    `json:"question_count"`
}

func (f *File) Kind() string { return NodeFile }

// entryResult is the outcome for one directory entry: a node to attach, a
// reason it was skipped, or neither when the entry is not eligible at all.
type entryResult struct {
	node    Node
	skipped error
}

// BuildTree walks dir and returns its folder node. dataRoot is the base used
// for the relative_path of each file. Unreadable directories and unparsable
// files are logged and left out instead of failing the whole walk.
func BuildTree(dir, dataRoot string) *Folder {
	name := filepath.Base(dir)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "data"
	}
	folder := &Folder{
		Name:     name,
		Path:     filepath.ToSlash(dir),
		Type:     NodeFolder,
		Children: []Node{},
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("read directory %s: %v", dir, err)
		return folder
	}

	for _, entry := range entries {
		res := buildEntry(dir, dataRoot, entry)
		if res.skipped != nil {
			log.Printf("skip %s: %v", filepath.Join(dir, entry.Name()), res.skipped)
			continue
		}
		if res.node != nil {
			folder.Children = append(folder.Children, res.node)
		}
	}
	return folder
}

func buildEntry(dir, dataRoot string, entry fs.DirEntry) entryResult {
	name := entry.Name()
	if strings.HasPrefix(name, ".") || name == indexFilename {
		return entryResult{}
	}

	path := filepath.Join(dir, name)
	if isDir(path, entry) {
		return entryResult{node: BuildTree(path, dataRoot)}
	}
	if !strings.HasSuffix(name, ".json") {
		return entryResult{}
	}

	doc, err := ReadFile(path)
	if err != nil {
		return entryResult{skipped: err}
	}

	rel, err := filepath.Rel(dataRoot, path)
	if err != nil {
		return entryResult{skipped: err}
	}
	return entryResult{node: &File{
		Name:          DisplayName(name),
		Filename:      name,
		Path:          filepath.ToSlash(path),
		RelativePath:  filepath.ToSlash(rel),
		Type:          NodeFile,
		QuestionCount: doc.Count(),
	}}
}

// isDir follows symlinks so linked folders are walked like real ones.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DisplayName turns "intro-to_go.json" into "Intro To Go". Every run of
// letters is title-cased on its own, so "w3vgp4ku5o" becomes "W3Vgp4Ku5O".
func DisplayName(filename string) string {
	name := strings.TrimSuffix(filename, ".json")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	caser := cases.Title(language.Und)
	var b strings.Builder
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			b.WriteString(caser.String(word.String()))
			word.Reset()
		}
	}
	for _, r := range name {
		if unicode.IsLetter(r) {
			word.WriteRune(r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

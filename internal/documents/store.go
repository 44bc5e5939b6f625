// Package documents stores user-uploaded, text-bearing files and exposes
// the list/search/summarize operations the agent's document tools use.
package documents

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Metadata describes one stored document.
type Metadata struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name"`
	UploadedAt   string `json:"uploaded_at"`
	Preview      string `json:"preview"`
}

const previewChars = 800

// Store keeps documents on disk, one directory per user with a JSON index.
type Store struct {
	root string
}

// NewStore creates a document store rooted at the given directory.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

func (s *Store) userDir(userID int64) (string, error) {
	dir := filepath.Join(s.root, strconv.FormatInt(userID, 10))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Store) loadIndex(userID int64) ([]Metadata, error) {
	dir, err := s.userDir(userID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var docs []Metadata
	if err := json.Unmarshal(data, &docs); err != nil {
		// A corrupt index is treated as empty rather than fatal.
		return nil, nil
	}
	return docs, nil
}

func (s *Store) saveIndex(userID int64, docs []Metadata) error {
	dir, err := s.userDir(userID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "index.json"), data, 0644)
}

// Save stores a document's raw bytes plus its extracted text and records it
// in the user's index. Text extraction happens upstream; the store never
// parses file formats itself.
func (s *Store) Save(userID int64, filename string, content []byte, text string) (Metadata, error) {
	docs, err := s.loadIndex(userID)
	if err != nil {
		return Metadata{}, err
	}

	dir, err := s.userDir(userID)
	if err != nil {
		return Metadata{}, err
	}

	id := uuid.NewString()
	storedName := id + ".pdf"
	if err := os.WriteFile(filepath.Join(dir, storedName), content, 0644); err != nil {
		return Metadata{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, id+".txt"), []byte(text), 0644); err != nil {
		return Metadata{}, err
	}

	preview := text
	if len(preview) > previewChars {
		preview = preview[:clampToRuneStart(preview, previewChars)]
	}
	if preview == "" {
		preview = "Text preview unavailable."
	}

	if filename == "" {
		filename = "document.pdf"
	}

	meta := Metadata{
		ID:           id,
		OriginalName: filename,
		StoredName:   storedName,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Preview:      preview,
	}

	docs = append(docs, meta)
	if err := s.saveIndex(userID, docs); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// List returns the user's documents, newest first.
func (s *Store) List(userID int64) ([]Metadata, error) {
	docs, err := s.loadIndex(userID)
	if err != nil {
		return nil, err
	}

	// Index order is insertion order; reverse first so that equal
	// timestamps still come out newest-upload-first after the stable sort.
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}
	sort.SliceStable(docs, func(i, j int) bool {
		ti, erri := time.Parse(time.RFC3339Nano, docs[i].UploadedAt)
		tj, errj := time.Parse(time.RFC3339Nano, docs[j].UploadedAt)
		if erri != nil || errj != nil {
			return docs[i].UploadedAt > docs[j].UploadedAt
		}
		return ti.After(tj)
	})
	return docs, nil
}

// Get returns one document's metadata, or false when it doesn't exist.
func (s *Store) Get(userID int64, documentID string) (Metadata, bool, error) {
	docs, err := s.loadIndex(userID)
	if err != nil {
		return Metadata{}, false, err
	}
	for _, doc := range docs {
		if doc.ID == documentID {
			return doc, true, nil
		}
	}
	return Metadata{}, false, nil
}

// Text returns a document's extracted text, or "" when missing.
func (s *Store) Text(userID int64, documentID string) (string, error) {
	_, ok, err := s.Get(userID, documentID)
	if err != nil || !ok {
		return "", err
	}
	dir, err := s.userDir(userID)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, documentID+".txt"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// clampToRuneStart moves i backward until it lands on a UTF-8 rune
// boundary, so byte slices never split a multi-byte rune.
func clampToRuneStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// FilePath returns the on-disk path of a document's stored bytes, or ""
// when the document does not exist.
func (s *Store) FilePath(userID int64, documentID string) (string, error) {
	meta, ok, err := s.Get(userID, documentID)
	if err != nil || !ok {
		return "", err
	}
	dir, err := s.userDir(userID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, meta.StoredName), nil
}

// Delete removes a document and its stored files.
func (s *Store) Delete(userID int64, documentID string) (bool, error) {
	docs, err := s.loadIndex(userID)
	if err != nil {
		return false, err
	}

	remaining := docs[:0]
	deleted := false
	for _, doc := range docs {
		if doc.ID == documentID {
			deleted = true
			continue
		}
		remaining = append(remaining, doc)
	}
	if !deleted {
		return false, nil
	}

	dir, err := s.userDir(userID)
	if err != nil {
		return false, err
	}
	os.Remove(filepath.Join(dir, documentID+".pdf"))
	os.Remove(filepath.Join(dir, documentID+".txt"))

	return true, s.saveIndex(userID, remaining)
}

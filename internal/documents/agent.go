package documents

import "strings"

const (
	summaryChars = 1200
	snippetPad   = 160
)

// ListForAgent returns the tool payload for list_user_documents.
func (s *Store) ListForAgent(userID int64) map[string]any {
	docs, err := s.List(userID)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	simplified := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		simplified = append(simplified, map[string]any{
			"id":          doc.ID,
			"name":        doc.OriginalName,
			"uploaded_at": doc.UploadedAt,
			"preview":     doc.Preview,
		})
	}
	return map[string]any{"documents": simplified}
}

// SummarizeForAgent returns the tool payload for summarize_user_document.
// A missing document yields an error payload, not a failure.
func (s *Store) SummarizeForAgent(userID int64, documentID string) map[string]any {
	doc, ok, err := s.Get(userID, documentID)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	if !ok {
		return map[string]any{"error": "Document not found."}
	}

	text, err := s.Text(userID, documentID)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	excerpt := text
	if len(excerpt) > summaryChars {
		excerpt = excerpt[:clampToRuneStart(excerpt, summaryChars)]
	}
	if excerpt == "" {
		excerpt = doc.Preview
	}
	if excerpt == "" {
		excerpt = "Unable to extract text from this document."
	}

	return map[string]any{
		"document": doc.OriginalName,
		"summary":  excerpt,
	}
}

// SearchForAgent returns the tool payload for search_user_documents: a
// snippet around the first occurrence of the query in each document.
func (s *Store) SearchForAgent(userID int64, query string) map[string]any {
	if query == "" {
		return map[string]any{"results": []any{}, "note": "No query provided."}
	}

	docs, err := s.List(userID)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	queryLower := strings.ToLower(query)
	results := make([]map[string]any, 0)

	for _, doc := range docs {
		text, err := s.Text(userID, doc.ID)
		if err != nil || text == "" {
			continue
		}
		idx := strings.Index(strings.ToLower(text), queryLower)
		if idx == -1 {
			continue
		}

		start := idx - snippetPad
		if start < 0 {
			start = 0
		}
		start = clampToRuneStart(text, start)
		end := idx + len(query) + snippetPad
		if end > len(text) {
			end = len(text)
		}
		end = clampToRuneStart(text, end)

		snippet := strings.TrimSpace(text[start:end])
		if snippet == "" {
			snippet = doc.Preview
		}
		results = append(results, map[string]any{
			"document": doc.OriginalName,
			"snippet":  snippet,
		})
	}

	if len(results) == 0 {
		return map[string]any{"results": []any{}, "note": "No matching passages found."}
	}
	return map[string]any{"results": results}
}

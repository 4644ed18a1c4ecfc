package models

import "encoding/json"

// Page is the list envelope the backend uses for paginated endpoints.
//
// Some endpoints return the envelope, others a bare JSON array for the same
// logical resource. UnmarshalJSON accepts both so nothing downstream ever
// branches on response shape: a bare array becomes a single-page envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			var items []T
			if err := json.Unmarshal(data, &items); err != nil {
				return err
			}
			*p = Page[T]{
				Content:       items,
				TotalElements: int64(len(items)),
				TotalPages:    1,
				Size:          len(items),
				Number:        0,
			}
			return nil
		}
		break
	}

	// Alias sheds the custom unmarshaler to avoid recursion.
	type alias Page[T]
	var env alias
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*p = Page[T](env)
	return nil
}

// Empty reports whether the page carries no items.
func (p Page[T]) Empty() bool {
	return len(p.Content) == 0
}

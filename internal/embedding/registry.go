package embedding

import "errors"

// ErrUnknownModel is returned for a model name that is not in the registry.
var ErrUnknownModel = errors.New("unknown embedding model")

// Model describes one selectable sentence-embedding model.
type Model struct {
	// Name is the identifier shown to the user and used as cache key.
	Name string
	// RepoID is the Hugging Face Hub repository the model is served from.
	RepoID      string
	Description string
}

var registry = []Model{
	{
		Name:        "paraphrase-multilingual-MiniLM-L12-v2",
		RepoID:      "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2",
		Description: "Lightweight and fast model for multiple languages.",
	},
	{
		Name:        "sentence-transformers/LaBSE",
		RepoID:      "sentence-transformers/LaBSE",
		Description: "Robust model for multilingual embeddings.",
	},
	{
		Name:        "all-MiniLM-L6-v2",
		RepoID:      "sentence-transformers/all-MiniLM-L6-v2",
		Description: "Compact and efficient for real-time tasks.",
	},
	{
		Name:        "bert-base-uncased",
		RepoID:      "bert-base-uncased",
		Description: "Standard BERT model, used in many NLP tasks.",
	},
}

// Models returns the registered models in display order.
func Models() []Model {
	out := make([]Model, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered model names in display order.
func Names() []string {
	names := make([]string, len(registry))
	for i, m := range registry {
		names[i] = m.Name
	}
	return names
}

// Lookup finds a model by name.
func Lookup(name string) (Model, bool) {
	for _, m := range registry {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

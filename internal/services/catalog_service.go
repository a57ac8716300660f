package services

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/repositories"
	"github.com/quizwhiz/quiz-service/internal/utils"
	"github.com/quizwhiz/quiz-service/internal/validator"
)

// CatalogService resolves the set of available quiz files from the
// externally maintained manifest.
//
// The contract is deliberately lenient: a missing or malformed
// manifest yields an empty list, never an error, so catalog
// unavailability degrades to "no quiz available" instead of crashing
// quiz setup.
type CatalogService interface {
	// ListFiles returns valid manifest entries, filtered to the given
	// role when one is supplied. Common-knowledge files match every
	// role.
	ListFiles(ctx context.Context, role models.RoleTag) []models.QuizFileMetadata
}

type catalogService struct {
	store     repositories.QuizFileStore
	logger    utils.Logger
	validator *validator.Validator
}

func NewCatalogService(store repositories.QuizFileStore, logger utils.Logger, validator *validator.Validator) CatalogService {
	return &catalogService{
		store:     store,
		logger:    logger,
		validator: validator,
	}
}

func (s *catalogService) ListFiles(ctx context.Context, role models.RoleTag) []models.QuizFileMetadata {
	raw, err := s.store.ReadManifest(ctx)
	if err != nil {
		s.logger.Warn("Quiz file manifest unavailable", "error", err)
		return nil
	}

	var entries []models.QuizFileMetadata
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("Quiz file manifest is not a valid entry list", "error", err)
		return nil
	}

	valid := make([]models.QuizFileMetadata, 0, len(entries))
	for _, entry := range entries {
		if err := s.validator.ValidateManifestEntry(entry); err != nil {
			s.logger.Warn("Dropping invalid manifest entry",
				"path", entry.Path, "role", entry.Role, "error", err)
			continue
		}
		if role != "" && !entry.Role.Matches(role) {
			continue
		}
		valid = append(valid, entry)
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i].Path < valid[j].Path })

	s.logger.Info("Listed quiz files",
		"role", role,
		"manifest_entries", len(entries),
		"valid_entries", len(valid))

	return valid
}

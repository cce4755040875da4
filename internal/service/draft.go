package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/internal/types"
)

const (
	// DraftTTL is how long an untouched draft survives
	DraftTTL = 24 * time.Hour
	// DraftSubmitTTL bounds how long a crashed submission keeps its draft locked
	DraftSubmitTTL = 2 * time.Minute

	draftWriteAttempts = 3
)

// draftReader is the part of the Redis API shared by the client and a WATCH transaction
type draftReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// DraftService drives the multi-step recipe submission wizard. Drafts live in
// Redis so a half-finished submission survives page reloads.
type DraftService struct {
	redis   *redis.Client
	recipes IRecipeService
	storage IStorageService
	logger  *zap.Logger
}

// Ensure DraftService implements IDraftService
var _ IDraftService = (*DraftService)(nil)

// NewDraftService creates a new DraftService instance
func NewDraftService(redisClient *redis.Client, recipes IRecipeService, storage IStorageService, logger *zap.Logger) *DraftService {
	return &DraftService{
		redis:   redisClient,
		recipes: recipes,
		storage: storage,
		logger:  logger,
	}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// draftClaimKey is held by the one submission allowed to run for a draft
func draftClaimKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s:submitting", id)
}

// NewForm returns the form a fresh draft starts with
func NewForm() types.RecipeFormData {
	f := false
	return types.RecipeFormData{
		Servings:       4,
		Difficulty:     types.DifficultyEasy,
		Cuisine:        types.CuisineOther,
		Tags:           []string{},
		Ingredients:    []types.Ingredient{{}},
		Instructions:   []string{""},
		NutritionFacts: &types.NutritionFacts{},
		AllergenInfo: types.AllergenInfo{
			Vegetarian:    &f,
			EggFree:       &f,
			FishFree:      &f,
			ShellFishFree: &f,
		},
	}
}

// CreateDraft starts a new submission at the first step
func (s *DraftService) CreateDraft(ctx context.Context, userID string) (*types.RecipeDraft, error) {
	if userID == "" {
		return nil, fmt.Errorf("failed to create draft: %w", ErrUnauthenticated)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft id: %w", err)
	}

	now := time.Now().UTC()
	draft := &types.RecipeDraft{
		ID:        id,
		UserID:    userID,
		Step:      types.FirstStep,
		Form:      NewForm(),
		CreatedAt: now,
	}
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft returns the caller's draft
func (s *DraftService) GetDraft(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	return s.load(ctx, userID, id)
}

// UpdateDraft merges patch into the draft's form
func (s *DraftService) UpdateDraft(ctx context.Context, userID, id string, patch *types.DraftPatch) (*types.RecipeDraft, error) {
	return s.mutate(ctx, userID, id, func(d *types.RecipeDraft) {
		applyPatch(&d.Form, patch)
	})
}

// NextStep advances the wizard. Incomplete steps do not block navigation.
func (s *DraftService) NextStep(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	return s.mutate(ctx, userID, id, func(d *types.RecipeDraft) {
		d.Step = (d.Step + 1).Clamp()
	})
}

// PrevStep moves the wizard back one step
func (s *DraftService) PrevStep(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	return s.mutate(ctx, userID, id, func(d *types.RecipeDraft) {
		d.Step = (d.Step - 1).Clamp()
	})
}

// ToggleTag adds tag to the form, or removes it if already present
func (s *DraftService) ToggleTag(ctx context.Context, userID, id, tag string) (*types.RecipeDraft, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("failed to toggle tag: %w", invalid(ErrInvalidRecipe, "tag is required"))
	}
	return s.mutate(ctx, userID, id, func(d *types.RecipeDraft) {
		tags := make([]string, 0, len(d.Form.Tags)+1)
		found := false
		for _, t := range d.Form.Tags {
			if t == tag {
				found = true
				continue
			}
			tags = append(tags, t)
		}
		if !found {
			tags = append(tags, tag)
		}
		d.Form.Tags = tags
	})
}

// DeleteDraft discards the caller's draft
func (s *DraftService) DeleteDraft(ctx context.Context, userID, id string) error {
	if _, err := s.load(ctx, userID, id); err != nil {
		return err
	}
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}

// SubmitDraft publishes the draft. The optional image is uploaded first under
// a fresh id; the recipe is then created with the uploaded URL, or the URL
// typed into the form. Any failure leaves the draft in place for a retry.
func (s *DraftService) SubmitDraft(ctx context.Context, userID, id string, image *types.Upload) (*types.Recipe, error) {
	if userID == "" {
		return nil, fmt.Errorf("failed to submit draft: %w", ErrUnauthenticated)
	}

	claimed, err := s.redis.SetNX(ctx, draftClaimKey(id), userID, DraftSubmitTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim draft in Redis: %w", err)
	}
	if !claimed {
		return nil, fmt.Errorf("failed to submit draft: %w", ErrDraftSubmitting)
	}
	defer func() {
		if err := s.redis.Del(context.WithoutCancel(ctx), draftClaimKey(id)).Err(); err != nil {
			s.logger.Warn("failed to release draft claim", zap.String("draft_id", id), zap.Error(err))
		}
	}()

	draft, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var issues []string
	for step := types.FirstStep; step <= types.LastStep; step++ {
		issues = append(issues, StepIssues(step, &draft.Form)...)
	}
	if len(issues) > 0 {
		return nil, fmt.Errorf("failed to submit draft: %w", invalid(ErrIncompleteDraft, issues...))
	}

	form := cleanForm(draft.Form)

	imageURL := ""
	if image != nil {
		imageURL, err = s.storage.UploadRecipeImage(ctx, uuid.NewString(), image)
		if err != nil {
			return nil, fmt.Errorf("failed to submit draft: %w", err)
		}
	}

	recipe, err := s.recipes.CreateRecipe(ctx, &form, userID, imageURL)
	if err != nil {
		if imageURL != "" {
			s.logger.Warn("uploaded image orphaned by failed submission",
				zap.String("draft_id", id),
				zap.String("image_url", imageURL))
		}
		return nil, fmt.Errorf("failed to submit draft: %w", err)
	}

	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		s.logger.Warn("failed to remove submitted draft", zap.String("draft_id", id), zap.Error(err))
	}

	s.logger.Info("draft submitted", zap.String("draft_id", id), zap.String("recipe_id", recipe.ID))
	return recipe, nil
}

// mutate applies fn to the stored draft under WATCH, so concurrent edits retry
// instead of overwriting each other. A draft being submitted is read-only.
func (s *DraftService) mutate(ctx context.Context, userID, id string, fn func(*types.RecipeDraft)) (*types.RecipeDraft, error) {
	if userID == "" {
		return nil, fmt.Errorf("failed to get draft: %w", ErrUnauthenticated)
	}

	var draft *types.RecipeDraft
	update := func(tx *redis.Tx) error {
		submitting, err := tx.Exists(ctx, draftClaimKey(id)).Result()
		if err != nil {
			return fmt.Errorf("failed to read draft state from Redis: %w", err)
		}
		if submitting > 0 {
			return fmt.Errorf("failed to update draft: %w", ErrDraftSubmitting)
		}

		d, err := s.read(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		fn(d)
		data, err := encodeDraft(d)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, draftKey(id), data, DraftTTL)
			return nil
		})
		if err != nil {
			return err
		}
		draft = d
		return nil
	}

	for attempt := 0; attempt < draftWriteAttempts; attempt++ {
		err := s.redis.Watch(ctx, update, draftKey(id), draftClaimKey(id))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return draft, nil
	}

	s.logger.Warn("draft update kept conflicting", zap.String("draft_id", id))
	return nil, fmt.Errorf("failed to update draft: %w", ErrDraftConflict)
}

func (s *DraftService) load(ctx context.Context, userID, id string) (*types.RecipeDraft, error) {
	if userID == "" {
		return nil, fmt.Errorf("failed to get draft: %w", ErrUnauthenticated)
	}
	return s.read(ctx, s.redis, userID, id)
}

func (s *DraftService) read(ctx context.Context, rdb draftReader, userID, id string) (*types.RecipeDraft, error) {
	data, err := rdb.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get draft: %w", ErrDraftNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft types.RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if draft.UserID != userID {
		return nil, fmt.Errorf("failed to get draft: %w", ErrDraftForbidden)
	}

	decorate(&draft)
	return &draft, nil
}

func (s *DraftService) save(ctx context.Context, draft *types.RecipeDraft) error {
	data, err := encodeDraft(draft)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, draftKey(draft.ID), data, DraftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

func encodeDraft(draft *types.RecipeDraft) ([]byte, error) {
	draft.UpdatedAt = time.Now().UTC()
	decorate(draft)

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	return data, nil
}

// decorate fills the derived fields shown to the client
func decorate(d *types.RecipeDraft) {
	d.Step = d.Step.Clamp()
	d.StepName = d.Step.String()
	d.Issues = StepIssues(d.Step, &d.Form)
}

// StepIssues lists what still needs filling in on one wizard step
func StepIssues(step types.WizardStep, f *types.RecipeFormData) []string {
	issues := []string{}
	switch step {
	case types.StepBasicInfo:
		if strings.TrimSpace(f.Title) == "" {
			issues = append(issues, "title is required")
		}
		if strings.TrimSpace(f.Description) == "" {
			issues = append(issues, "description is required")
		}
		if strings.TrimSpace(f.PrepTime) == "" {
			issues = append(issues, "prep time is required")
		}
		if strings.TrimSpace(f.CookTime) == "" {
			issues = append(issues, "cook time is required")
		}
		if f.Servings <= 0 {
			issues = append(issues, "servings must be at least 1")
		}
		if !f.Cuisine.Valid() {
			issues = append(issues, fmt.Sprintf("unknown cuisine %q", f.Cuisine))
		}
		if !f.Difficulty.Valid() {
			issues = append(issues, fmt.Sprintf("unknown difficulty %q", f.Difficulty))
		}
	case types.StepIngredients:
		complete := 0
		for i, ing := range f.Ingredients {
			item, amount := strings.TrimSpace(ing.Item), strings.TrimSpace(ing.Amount)
			switch {
			case item != "" && amount != "":
				complete++
			case item != "":
				issues = append(issues, fmt.Sprintf("ingredient %d needs an amount", i+1))
			case amount != "":
				issues = append(issues, fmt.Sprintf("ingredient %d needs an item", i+1))
			}
		}
		if complete == 0 {
			issues = append(issues, "at least one ingredient is required")
		}
	case types.StepInstructions:
		for _, in := range f.Instructions {
			if strings.TrimSpace(in) != "" {
				return issues
			}
		}
		issues = append(issues, "at least one instruction is required")
	case types.StepNutritionTags:
		if f.Calories < 0 {
			issues = append(issues, "calories cannot be negative")
		}
		if f.NutritionFacts != nil && f.NutritionFacts.Calories < 0 {
			issues = append(issues, "nutrition calories cannot be negative")
		}
	}
	return issues
}

// cleanForm drops the blank rows the wizard keeps around for editing
func cleanForm(f types.RecipeFormData) types.RecipeFormData {
	ingredients := make([]types.Ingredient, 0, len(f.Ingredients))
	for _, ing := range f.Ingredients {
		if strings.TrimSpace(ing.Item) != "" {
			ingredients = append(ingredients, ing)
		}
	}
	instructions := make([]string, 0, len(f.Instructions))
	for _, in := range f.Instructions {
		if strings.TrimSpace(in) != "" {
			instructions = append(instructions, in)
		}
	}
	f.Ingredients = ingredients
	f.Instructions = instructions
	return f
}

func applyPatch(f *types.RecipeFormData, p *types.DraftPatch) {
	if p == nil {
		return
	}
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Image != nil {
		f.Image = *p.Image
	}
	if p.CookTime != nil {
		f.CookTime = *p.CookTime
	}
	if p.PrepTime != nil {
		f.PrepTime = *p.PrepTime
	}
	if p.Servings != nil {
		f.Servings = *p.Servings
	}
	if p.Difficulty != nil {
		f.Difficulty = *p.Difficulty
	}
	if p.Cuisine != nil {
		f.Cuisine = *p.Cuisine
	}
	if p.Calories != nil {
		f.Calories = *p.Calories
	}
	if p.Ingredients != nil {
		f.Ingredients = p.Ingredients
	}
	if p.Instructions != nil {
		f.Instructions = p.Instructions
	}
	if p.NutritionFacts != nil {
		f.NutritionFacts = p.NutritionFacts
	}
	if p.AllergenInfo != nil {
		f.AllergenInfo = *p.AllergenInfo
	}
}

package service

import (
	"context"

	"github.com/pageza/allerfree/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]*types.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*types.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]*types.Recipe, error)
	ListByCuisine(ctx context.Context, cuisine types.Cuisine) ([]*types.Recipe, error)
	PopularRecipes(ctx context.Context, limit int) ([]*types.Recipe, error)
	RecentRecipes(ctx context.Context, limit int) ([]*types.Recipe, error)
	CreateRecipe(ctx context.Context, form *types.RecipeFormData, authorID, imageURL string) (*types.Recipe, error)
	UpdateRecipe(ctx context.Context, callerID, id string, update *types.RecipeUpdate) (*types.Recipe, error)
	DeleteRecipe(ctx context.Context, callerID, id string) error
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	SyncIdentity(ctx context.Context, identity *types.Identity) (*types.AuthUser, error)
	ResolveUserID(ctx context.Context, identity *types.Identity) (string, error)
	GetProfile(ctx context.Context, userID string) (*types.AuthUser, error)
	UpdateProfile(ctx context.Context, userID string, req *types.UpdateProfileRequest) (*types.AuthUser, error)
}

// IAuthService defines the interface for identity provider operations
type IAuthService interface {
	ValidateToken(ctx context.Context, token string) (*types.Identity, error)
	LoginURL(connection, state string) (string, error)
	LogoutURL() string
	Exchange(ctx context.Context, code string) (*types.Identity, error)
}

// IStorageService defines the interface for image uploads
type IStorageService interface {
	UploadRecipeImage(ctx context.Context, ownerID string, upload *types.Upload) (string, error)
	UploadUserAvatar(ctx context.Context, userID string, upload *types.Upload) (string, error)
	DeleteUserAvatar(ctx context.Context, avatarURL string) error
	PublicURL(bucket, key string) string
}

// IDraftService defines the interface for the recipe submission wizard
type IDraftService interface {
	CreateDraft(ctx context.Context, userID string) (*types.RecipeDraft, error)
	GetDraft(ctx context.Context, userID, id string) (*types.RecipeDraft, error)
	UpdateDraft(ctx context.Context, userID, id string, patch *types.DraftPatch) (*types.RecipeDraft, error)
	NextStep(ctx context.Context, userID, id string) (*types.RecipeDraft, error)
	PrevStep(ctx context.Context, userID, id string) (*types.RecipeDraft, error)
	ToggleTag(ctx context.Context, userID, id, tag string) (*types.RecipeDraft, error)
	DeleteDraft(ctx context.Context, userID, id string) error
	SubmitDraft(ctx context.Context, userID, id string, image *types.Upload) (*types.Recipe, error)
}

// IHomeService defines the interface for the landing page feed
type IHomeService interface {
	Feed(ctx context.Context) (*types.HomeFeed, error)
}

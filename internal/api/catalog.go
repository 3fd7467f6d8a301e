package api

import (
	"net/http" // HTTP status codes

	"budgetmate/internal/domain" // Domain types

	"github.com/gin-gonic/gin" // Gin web framework
)

// CategoryRequest is the body for creating a category
type CategoryRequest struct {
	Name string              `json:"name" binding:"required"` // Unique name
	Type domain.CategoryType `json:"type" binding:"required"` // INCOME or EXPENSE
}

// PetRequest is the body for creating a pet
type PetRequest struct {
	Name        string `json:"name" binding:"required"` // Pet name
	Description string `json:"description"`             // Pet description
}

// ListCategoriesHandler returns every category
func ListCategoriesHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategoryHandler adds a category
func CreateCategoryHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		category, err := catalog.CreateCategory(c.Request.Context(), req.Name, req.Type)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// DeleteCategoryHandler removes an unused category
func DeleteCategoryHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := catalog.DeleteCategory(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

// ListPetsHandler returns every adoptable pet
func ListPetsHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		pets, err := catalog.ListPets(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pets)
	}
}

// CreatePetHandler adds a pet
func CreatePetHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PetRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		pet, err := catalog.CreatePet(c.Request.Context(), req.Name, req.Description)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, pet)
	}
}

// DeletePetHandler removes a pet and unlinks its owners
func DeletePetHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := catalog.DeletePet(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Pet deleted"})
	}
}

// AdoptPetHandler links a pet to the authenticated user
func AdoptPetHandler(catalog CatalogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		petID, ok := pathID(c, "id")
		if !ok {
			return
		}
		user, err := catalog.AdoptPet(c.Request.Context(), userID, petID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

package catalog

import (
	"errors"
	"log"
	"net/http"

	"webora_backend/internal/checkout"
	"webora_backend/internal/repository"
	services "webora_backend/internal/service"

	"github.com/gin-gonic/gin"
)

var catalog = repository.CatalogRepository{}

// ListServices liste les prestations actives du catalogue avec leurs tarifs
func ListServices(c *gin.Context) {
	list, err := catalog.ListServices(c.Request.Context())
	if err != nil {
		log.Printf("❌ Erreur listing catalogue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

// GetService retourne une prestation et ses tarifs par formule
func GetService(c *gin.Context) {
	svc, err := catalog.GetService(c.Request.Context(), c.Param("id"))
	if errors.Is(err, checkout.ErrServiceNotFound) || (err == nil && !svc.Active) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load service"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// SearchServices recherche dans le catalogue via Elasticsearch
func SearchServices(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	results, err := services.SearchServices(query)
	if err != nil {
		log.Printf("❌ Erreur recherche catalogue: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

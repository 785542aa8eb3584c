package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"untisd/internal/models"
	"untisd/internal/providers"
	"untisd/internal/services"
)

type ApiController struct {
	logger  providers.Logger
	service services.TimetableServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.TimetableServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetEntities(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "entities", func() (any, error) {
		return ac.service.Entities(), nil
	})
}

func (ac *ApiController) serveEntity(w http.ResponseWriter, id string) {
	entity, ok := ac.service.Entity(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	gson, err := json.Marshal(entity)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetClass(w http.ResponseWriter, r *http.Request) {
	ac.serveEntity(w, models.EntityClass)
}

func (ac *ApiController) GetNextClass(w http.ResponseWriter, r *http.Request) {
	ac.serveEntity(w, models.EntityNextClass)
}

func (ac *ApiController) GetNextLessonToWakeUp(w http.ResponseWriter, r *http.Request) {
	ac.serveEntity(w, models.EntityWakeUp)
}

// GetToday bundles the two today-span sensors into one response.
func (ac *ApiController) GetToday(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "today", func() (any, error) {
		out := make([]models.Entity, 0, 2)
		if e, ok := ac.service.Entity(models.EntityTodayStart); ok {
			out = append(out, e)
		}
		if e, ok := ac.service.Entity(models.EntityTodayEnd); ok {
			out = append(out, e)
		}
		return out, nil
	})
}

func (ac *ApiController) GetLessons(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "lessons", func() (any, error) {
		days := ac.service.Days()
		if days == nil {
			days = []models.Day{}
		}
		return days, nil
	})
}

/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package controllers exposes the example repositories over HTTP.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomoncle/hummerdata/config"
	"github.com/tomoncle/hummerdata/example/domain"
	"github.com/tomoncle/hummerdata/repository"
	"github.com/tomoncle/hummerdata/types"
	"github.com/tomoncle/hummerdata/utils"
)

// Response headers carrying the page metadata of GET /pets.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderTotalPages = "X-Total-Pages"
)

var log = utils.NewLogger("PETSTORE")

// PetFinder looks up a single pet projection.
type PetFinder interface {
	GetByName(ctx context.Context, name string) (*domain.PetDTO, error)
}

type PetController struct {
	names      repository.PageableRepository[domain.NameDTO]
	pets       PetFinder
	pagination config.PaginationConfig
}

func NewPetController(names repository.PageableRepository[domain.NameDTO], pets PetFinder, pagination config.PaginationConfig) *PetController {
	if pagination.DefaultSize < 1 {
		pagination.DefaultSize = types.DefaultPageSize
	}
	if pagination.MaxSize < pagination.DefaultSize {
		pagination.MaxSize = pagination.DefaultSize
	}
	return &PetController{names: names, pets: pets, pagination: pagination}
}

// RegisterRoutes mounts GET /pets and GET /pets/:name.
func (pc *PetController) RegisterRoutes(r gin.IRouter) {
	pets := r.Group("/pets")
	{
		pets.GET("", pc.List)
		pets.GET("/:name", pc.Get)
	}
}

// List endpoint GET /pets?page=&size=&sort=property,DIRECTION[,ignorecase]
func (pc *PetController) List(c *gin.Context) {
	pageable, err := types.PageableFromQuery(c.Request.URL.Query(), pc.pagination.DefaultSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pageable = pc.clamp(pageable)

	page, err := pc.names.FindPage(c.Request.Context(), pageable)
	if err != nil {
		if errors.Is(err, types.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).WithField("pageable", pageable.String()).Error("failed to list pets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Header(HeaderTotalCount, strconv.FormatInt(page.TotalSize(), 10))
	c.Header(HeaderTotalPages, strconv.Itoa(page.TotalPages()))
	c.JSON(http.StatusOK, page.Content())
}

// clamp caps the page size. Unpaged requests get the first page of the
// largest allowed size.
func (pc *PetController) clamp(pageable types.Pageable) types.Pageable {
	if !pageable.IsUnpaged() && pageable.Size() <= pc.pagination.MaxSize {
		return pageable
	}
	clamped, err := types.NewPageable(pageable.Page(), pc.pagination.MaxSize, pageable.Sort())
	if err != nil {
		return pageable
	}
	return clamped
}

// Get endpoint GET /pets/:name
func (pc *PetController) Get(c *gin.Context) {
	pet, err := pc.pets.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pet not found"})
			return
		}
		log.WithError(err).Error("failed to load pet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, pet)
}

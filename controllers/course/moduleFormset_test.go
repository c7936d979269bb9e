package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"coursehub/database"
	courseModels "coursehub/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleFormsetGetIncludesBlankRows(t *testing.T) {
	app := setupTestApp(t)

	owner, token := createUser(t, "INSTRUCTOR", "owner@example.com")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner.ID, subject.ID, "Go Basics", "go-basics")
	createModule(t, course.ID, "Getting Started", 0)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/module", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rows := decodeBody(t, resp)["data"].(map[string]interface{})["modules"].([]interface{})
	require.Len(t, rows, 3)
	assert.Equal(t, "Getting Started", rows[0].(map[string]interface{})["title"])
	assert.Equal(t, "", rows[1].(map[string]interface{})["title"])
}

func TestModuleFormsetAssignsOrderFromZero(t *testing.T) {
	app := setupTestApp(t)

	owner, token := createUser(t, "INSTRUCTOR", "owner@example.com")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner.ID, subject.ID, "Go Basics", "go-basics")

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/module", course.ID), token, fiber.Map{
		"modules": []fiber.Map{
			{"title": "Getting Started", "description": "First steps"},
			{"title": "Types", "description": "The type system"},
		},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/course/mine", resp.Header.Get("Location"))

	var modules []courseModels.Module
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&modules).Error)
	require.Len(t, modules, 2)
	assert.Equal(t, 0, modules[0].OrderIndex)
	assert.Equal(t, "Getting Started", modules[0].Title)
	assert.Equal(t, 1, modules[1].OrderIndex)

	// A later addition continues after the current maximum
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/module", course.ID), token, fiber.Map{
		"modules": []fiber.Map{
			{"title": "Concurrency", "description": "Goroutines and channels"},
		},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var added courseModels.Module
	require.NoError(t, database.Database.Db.Where("course_id = ? AND title = ?", course.ID, "Concurrency").First(&added).Error)
	assert.Equal(t, 2, added.OrderIndex)
}

func TestModuleFormsetInvalidRowPersistsNothing(t *testing.T) {
	app := setupTestApp(t)

	owner, token := createUser(t, "INSTRUCTOR", "owner@example.com")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner.ID, subject.ID, "Go Basics", "go-basics")

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/module", course.ID), token, fiber.Map{
		"modules": []fiber.Map{
			{"title": "Getting Started", "description": "First steps"},
			{"title": "ab", "description": "Too short"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errors := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Contains(t, errors, "modules.1.title")

	var count int64
	database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
}

// A row naming a module of another course fails the whole set
func TestModuleFormsetForeignModuleRejected(t *testing.T) {
	app := setupTestApp(t)

	owner, token := createUser(t, "INSTRUCTOR", "owner@example.com")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner.ID, subject.ID, "Go Basics", "go-basics")
	otherCourse := createCourse(t, owner.ID, subject.ID, "Rust Basics", "rust-basics")
	foreign := createModule(t, otherCourse.ID, "Ownership", 0)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/module", course.ID), token, fiber.Map{
		"modules": []fiber.Map{
			{"title": "Getting Started", "description": "First steps"},
			{"id": foreign.ID, "title": "Hijacked", "description": ""},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errors := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Contains(t, errors, "modules.1.id")

	// Nothing persisted: no new module, foreign module untouched
	var count int64
	database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)

	var untouched courseModels.Module
	require.NoError(t, database.Database.Db.First(&untouched, foreign.ID).Error)
	assert.Equal(t, "Ownership", untouched.Title)
}

func TestModuleFormsetEditAndDeleteRows(t *testing.T) {
	app := setupTestApp(t)

	owner, token := createUser(t, "INSTRUCTOR", "owner@example.com")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner.ID, subject.ID, "Go Basics", "go-basics")
	keep := createModule(t, course.ID, "Getting Started", 0)
	drop := createModule(t, course.ID, "Outdated", 1)

	text := courseModels.Text{OwnerID: owner.ID, Title: "Old notes", Content: "stale"}
	require.NoError(t, database.Database.Db.Create(&text).Error)
	link := courseModels.Content{ModuleID: drop.ID, ItemType: courseModels.ItemTypeText, ItemID: text.ID}
	require.NoError(t, database.Database.Db.Create(&link).Error)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/module", course.ID), token, fiber.Map{
		"modules": []fiber.Map{
			{"id": keep.ID, "title": "Getting Started, Revised", "description": "Updated"},
			{"id": drop.ID, "title": "Outdated", "delete": true},
		},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var updated courseModels.Module
	require.NoError(t, database.Database.Db.First(&updated, keep.ID).Error)
	assert.Equal(t, "Getting Started, Revised", updated.Title)
	assert.False(t, updated.IsDeleted)

	var removed courseModels.Module
	require.NoError(t, database.Database.Db.First(&removed, drop.ID).Error)
	assert.True(t, removed.IsDeleted)

	var removedLink courseModels.Content
	require.NoError(t, database.Database.Db.First(&removedLink, link.ID).Error)
	assert.True(t, removedLink.IsDeleted)
}

func TestModuleFormsetNonOwnerLooksLikeMissing(t *testing.T) {
	app := setupTestApp(t)

	owner, _ := createUser(t, "INSTRUCTOR", "owner@example.com")
	_, otherToken := createUser(t, "INSTRUCTOR", "other@example.com")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner.ID, subject.ID, "Go Basics", "go-basics")

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/module", course.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

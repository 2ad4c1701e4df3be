package controllers

import (
	"cboost/models"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAllModules(t *testing.T) {
	app, db := setupTestApp(t)
	app.Get("/api/modules", GetAllModules)
	app.Get("/api/modules/:id", GetModuleDetails)
	app.Get("/api/modules/:id/exercises", GetModuleExercises)

	_, module, _ := seedUserAndModule(t, db, 3)
	require.NoError(t, db.Create(&models.Exercise{ModuleID: module.ID, Description: "Identifiez 3 réussites passées"}).Error)

	resp := doRequest(t, app, "GET", "/api/modules", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []models.Module `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	require.Len(t, body.Data[0].Lessons, 3)
	require.Len(t, body.Data[0].Exercises, 1)

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/modules/%d", module.ID), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/modules/9999", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/modules/%d/exercises", module.ID), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/modules/9999/exercises", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submitty/dockerdash/lib/inventory"
)

const (
	testDockerData = `{
  "docker_images": [
    {"tags": ["repo/img:v1", "repo/img:latest"], "created": "2023-01-01T00:00:00Z", "size": 2097152, "virtual_size": 1048576},
    {"tags": ["repo/other:v2"], "created": "garbage", "size": 1048576, "virtual_size": 1048576}
  ],
  "docker_info": {"ServerVersion": "28.2.2"}
}`
	testContainers = `{"default": ["repo/img:latest"], "python": ["repo/img:latest", "repo/missing:v1"]}`
	testWorkers    = `{
  "w1": {"capabilities": ["python"], "num_autograding_workers": 1, "enabled": true},
  "w2": {"capabilities": ["default", "ocaml"], "num_autograding_workers": 3, "enabled": false}
}`
)

func seedConfig(t *testing.T, dir string) {
	writeConfig(t, dir, "docker_data.json", testDockerData)
	writeConfig(t, dir, "autograding_containers.json", testContainers)
	writeConfig(t, dir, "autograding_workers.json", testWorkers)
}

func TestGetDocker(t *testing.T) {
	svc, dir := newTestService(t)
	seedConfig(t, dir)

	rec := serve(svc, http.MethodGet, "/admin/docker")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		AutogradingContainers struct {
			Found     []map[string]any          `json:"found"`
			AllImages map[string]map[string]any `json:"all_images"`
			NotFound  []string                  `json:"not_found"`
		} `json:"autograding_containers"`
		Capabilities                  []string `json:"capabilities"`
		CapabilitiesWithoutContainers []string `json:"capabilities_without_containers"`
		WorkerMachines                []struct {
			Name             string   `json:"name"`
			NumWorkers       int      `json:"num_workers"`
			ImagesNotFound   []string `json:"images_not_found"`
			CapabilityVector []bool   `json:"capability_vector"`
		} `json:"worker_machines"`
		DockerInfo map[string]any   `json:"docker_info"`
		Warnings   []map[string]any `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.AutogradingContainers.Found, 1)
	assert.Equal(t, "repo/img", body.AutogradingContainers.Found[0]["name"])
	assert.Equal(t, "2.00 MB", body.AutogradingContainers.Found[0]["size"])
	assert.Len(t, body.AutogradingContainers.AllImages, 3)
	assert.Equal(t, []string{"repo/missing:v1"}, body.AutogradingContainers.NotFound)

	assert.Equal(t, []string{"default", "ocaml", "python"}, body.Capabilities)
	assert.Equal(t, []string{"ocaml"}, body.CapabilitiesWithoutContainers)

	require.Len(t, body.WorkerMachines, 2)
	assert.Equal(t, "w1", body.WorkerMachines[0].Name)
	assert.Equal(t, []bool{false, false, true}, body.WorkerMachines[0].CapabilityVector)
	assert.Equal(t, []string{"repo/missing:v1"}, body.WorkerMachines[0].ImagesNotFound)
	assert.Equal(t, 3, body.WorkerMachines[1].NumWorkers)
	assert.Equal(t, []bool{true, true, false}, body.WorkerMachines[1].CapabilityVector)

	assert.Equal(t, "28.2.2", body.DockerInfo["ServerVersion"])

	require.Len(t, body.Warnings, 1)
	assert.Equal(t, "malformed timestamp", body.Warnings[0]["kind"])
	assert.Equal(t, "repo/other:v2", body.Warnings[0]["identifier"])
}

func TestGetDocker_IncompleteSnapshot(t *testing.T) {
	svc, dir := newTestService(t)
	writeConfig(t, dir, "docker_data.json", testDockerData)
	writeConfig(t, dir, "autograding_containers.json", testContainers)

	rec := serve(svc, http.MethodGet, "/admin/docker")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var apiErr Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "incomplete_snapshot", apiErr.Code)
	assert.Contains(t, apiErr.Message, inventory.ErrIncompleteSnapshot.Error())
	assert.Contains(t, apiErr.Message, "autograding workers")
}

func TestGetDocker_DecodeError(t *testing.T) {
	svc, dir := newTestService(t)
	seedConfig(t, dir)
	writeConfig(t, dir, "autograding_workers.json", `{"w1": "broken"}`)

	rec := serve(svc, http.MethodGet, "/admin/docker")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var apiErr Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "error", apiErr.Code)
}

func TestGetWorker(t *testing.T) {
	svc, dir := newTestService(t)
	seedConfig(t, dir)

	rec := serve(svc, http.MethodGet, "/admin/docker/workers/w2")
	require.Equal(t, http.StatusOK, rec.Code)

	var worker inventory.WorkerView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &worker))
	assert.Equal(t, "w2", worker.Name)
	assert.Equal(t, []string{"default", "ocaml"}, worker.Capabilities)
	require.Len(t, worker.Images, 1)
	assert.Equal(t, "repo/img", worker.Images[0].Repository)
	assert.False(t, worker.Enabled)
}

func TestGetWorker_NotFound(t *testing.T) {
	svc, dir := newTestService(t)
	seedConfig(t, dir)

	rec := serve(svc, http.MethodGet, "/admin/docker/workers/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "worker not found: nope", apiErr.Message)
}

package picking_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"testing"

	"picklist/feature/picking"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, body := range files {
		fw, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = io.WriteString(fw, body)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func setupApp(t *testing.T) *fiber.App {
	svc := picking.NewService(newMemBucket(), "picklist", zap.NewNop(), picking.Options{Config: testConfig()})
	app := fiber.New()
	picking.NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleCreateRun(t *testing.T) {
	app := setupApp(t)

	body, ct := multipartBody(t, map[string]string{
		"web":    webCSV,
		"manual": manualCSV,
		"master": masterCSV,
		"sites":  sitesCSV,
	}, map[string]string{"ledger": "false"})
	req := httptest.NewRequest("POST", "/picking/runs", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var report picking.RunReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 2, report.Summary.ValidLines)
	assert.Contains(t, report.Files, "picking_WH-B.xlsx")

	t.Run("Download", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/picking/runs/"+report.ID+"/files/picking_WH-B.xlsx", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "picking_WH-B.xlsx")
	})

	t.Run("Summary", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/picking/runs/"+report.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("List", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/picking/runs", nil))
		require.NoError(t, err)
		var out map[string][]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, []string{report.ID}, out["runs"])
	})

	t.Run("Delete", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/picking/runs/"+report.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", "/picking/runs/"+report.ID+"/files/picking_WH-B.xlsx", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleGetFile_NonASCIIWarehouse(t *testing.T) {
	app := setupApp(t)

	body, ct := multipartBody(t, map[string]string{
		"web":    webCSV,
		"manual": manualCSV,
		"master": masterCSV,
		"sites":  "site_code,old_code,warehouse,name\nN100,O100,华东仓,Station 100\nN200,O200,华东 2,Station 200\n",
	}, map[string]string{"ledger": "false"})
	req := httptest.NewRequest("POST", "/picking/runs", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var report picking.RunReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Contains(t, report.Files, "picking_华东仓.xlsx")
	require.Contains(t, report.Files, "picking_华东 2.xlsx")

	for _, name := range []string{"picking_华东仓.xlsx", "picking_华东 2.xlsx"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/picking/runs/"+report.ID+"/files/"+url.PathEscape(name), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, name)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, data, name)
	}

	t.Run("EscapedSeparatorRejected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/picking/runs/"+report.ID+"/files/..%2Fsummary.json", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleCreateRun_BadRequests(t *testing.T) {
	app := setupApp(t)

	t.Run("MissingFile", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"web": webCSV, "master": masterCSV}, nil)
		req := httptest.NewRequest("POST", "/picking/runs", body)
		req.Header.Set("Content-Type", ct)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{
			"web":    "商品编码,订货数量\nS1,1\n",
			"manual": manualCSV,
			"master": masterCSV,
			"sites":  sitesCSV,
		}, nil)
		req := httptest.NewRequest("POST", "/picking/runs", body)
		req.Header.Set("Content-Type", ct)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out["error"], `web file is missing required column "site_code"`)
	})

	t.Run("UnknownRun", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/picking/runs/not-a-run", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

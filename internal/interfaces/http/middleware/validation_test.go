package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationBody struct {
	Name     string  `json:"name" binding:"required,max=200"`
	Document string  `json:"document" binding:"required,cpfcnpj"`
	State    string  `json:"state" binding:"required,uf"`
	Area     float64 `json:"area" binding:"gte=0"`
}

func bindEngine() *gin.Engine {
	SetupValidator()
	r := gin.New()
	r.Use(RequestID())
	r.POST("/bind", func(c *gin.Context) {
		var body registrationBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func postJSON(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestValidator_AcceptsValidBody(t *testing.T) {
	w, _ := postJSON(t, bindEngine(), `{"name":"Ana","document":"529.982.247-25","state":"sp","area":10}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestValidator_CNPJ(t *testing.T) {
	w, _ := postJSON(t, bindEngine(), `{"name":"Coop","document":"11.222.333/0001-81","state":"MG"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestValidator_InvalidDocumentIs422(t *testing.T) {
	w, resp := postJSON(t, bindEngine(), `{"name":"Ana","document":"11111111111","state":"SP"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidDocument, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "document", resp.Error.Details[0].Field)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestValidator_FieldErrorsAre400(t *testing.T) {
	w, resp := postJSON(t, bindEngine(), `{"document":"52998224725","state":"SPX","area":-1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["name"])
	assert.Equal(t, "Must be a Brazilian state code (UF)", fields["state"])
	assert.Equal(t, "Must be greater than or equal to 0", fields["area"])
}

func TestValidator_MalformedJSON(t *testing.T) {
	w, resp := postJSON(t, bindEngine(), `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
}

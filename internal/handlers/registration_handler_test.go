package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bureaunet/directory-backend/internal/models"
	"github.com/bureaunet/directory-backend/pkg/storage"
)

func distributorFields() map[string]string {
	return map[string]string{
		"fullName":      "Nimal Perera",
		"email":         "nimal@example.com",
		"mobileNumber":  "0771234567",
		"password":      "s3cret",
		"companyName":   "Perera Holdings",
		"location":      "Colombo",
		"paymentStatus": "paid",
		"createdAt":     "2024-05-01",
	}
}

func bureauFields() map[string]string {
	return map[string]string{
		"bureauName":    "Sunrise Bureau",
		"mobileNumber":  "0711111111",
		"about":         "Matchmaking",
		"location":      "Galle",
		"email":         "sunrise@example.com",
		"ownerName":     "Kamala",
		"distributorId": "42",
		"password":      "pw",
	}
}

func TestCreateDistributor(t *testing.T) {
	t.Run("multipart with documents", func(t *testing.T) {
		env := newTestEnv(t)

		req := multipartRequest(t, http.MethodPost, "/api/distributor/create", distributorFields(), []upload{
			{field: "documents", name: "nic.pdf", content: "nic"},
			{field: "documents", name: "br.pdf", content: "br"},
			{field: "documents", name: "photo.jpg", content: "photo"},
		})
		w := env.do(req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"message":"Distributor created successfully"}`, w.Body.String())

		require.Len(t, env.distributors.rows, 1)
		row := env.distributors.rows[0]
		assert.Equal(t, "Nimal Perera", row.FullName)
		assert.NotEqual(t, "s3cret", row.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte("s3cret")))
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), row.CreatedAt)
		require.NotNil(t, row.Location)
		assert.Equal(t, "Colombo", *row.Location)

		docs := env.distributors.documents[row.ID]
		require.Len(t, docs, 3)
		pattern := regexp.MustCompile(`^/uploads/\d+-(nic\.pdf|br\.pdf|photo\.jpg)$`)
		for _, doc := range docs {
			assert.Regexp(t, pattern, doc)
			_, err := os.Stat(filepath.Join(env.store.Dir(storage.Documents), strings.TrimPrefix(doc, "/uploads/")))
			assert.NoError(t, err)
		}
	})

	t.Run("json body without documents", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(jsonRequest(http.MethodPost, "/api/distributor/create",
			`{"fullName":"A","email":"a@example.com","mobileNumber":"1","password":"p","companyName":"C"}`))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.Len(t, env.distributors.rows, 1)
		assert.Nil(t, env.distributors.rows[0].Location)
		assert.Empty(t, env.distributors.documents)
	})

	t.Run("missing required field", func(t *testing.T) {
		env := newTestEnv(t)
		fields := distributorFields()
		delete(fields, "companyName")

		w := env.do(multipartRequest(t, http.MethodPost, "/api/distributor/create", fields, nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Please fill all required fields.", body.Message)
		assert.Equal(t, []string{"companyName"}, body.Fields)
		assert.Empty(t, env.distributors.rows)
	})

	t.Run("duplicate mobile number", func(t *testing.T) {
		env := newTestEnv(t)
		env.distributors.rows = []models.Distributor{{ID: 1, Email: "other@example.com", MobileNumber: "0771234567"}}

		w := env.do(multipartRequest(t, http.MethodPost, "/api/distributor/create", distributorFields(), nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Distributor already exists with this email or mobile number.")
		assert.Len(t, env.distributors.rows, 1)
	})

	t.Run("invalid createdAt", func(t *testing.T) {
		env := newTestEnv(t)
		fields := distributorFields()
		fields["createdAt"] = "yesterday"

		w := env.do(multipartRequest(t, http.MethodPost, "/api/distributor/create", fields, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, env.distributors.rows)
	})

	t.Run("too many documents", func(t *testing.T) {
		env := newTestEnv(t)
		files := make([]upload, MaxDocuments+1)
		for i := range files {
			files[i] = upload{field: "documents", name: fmt.Sprintf("doc%d.pdf", i), content: "x"}
		}

		w := env.do(multipartRequest(t, http.MethodPost, "/api/distributor/create", distributorFields(), files))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "A maximum of 10 documents can be uploaded.")
		assert.Empty(t, env.distributors.rows)
	})
}

func TestCreateBureau(t *testing.T) {
	t.Run("success stores every document under a distinct name", func(t *testing.T) {
		env := newTestEnv(t)

		req := multipartRequest(t, http.MethodPost, "/api/bureau/create", bureauFields(), []upload{
			{field: "documents", name: "deed.pdf", content: "deed one"},
			{field: "documents", name: "deed.pdf", content: "deed two"},
			{field: "documents", name: "license.pdf", content: "license"},
		})
		w := env.do(req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var body CreateBureauResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Bureau created successfully", body.Message)
		assert.Regexp(t, `^[1-9]\d{6}$`, body.BureauID)

		require.Len(t, env.bureaus.rows, 1)
		row := env.bureaus.rows[0]
		assert.Equal(t, body.BureauID, row.BureauID)
		assert.Equal(t, "42", row.DistributorID)
		assert.Nil(t, row.PaymentStatus)

		docs := env.bureaus.documents[row.ID]
		require.Len(t, docs, 3)

		pattern := regexp.MustCompile(`^/uploads/\d+-(deed\.pdf|license\.pdf)$`)
		seen := map[string]bool{}
		contents := map[string]bool{}
		for _, doc := range docs {
			assert.Regexp(t, pattern, doc)
			assert.False(t, seen[doc], "stored name %s reused", doc)
			seen[doc] = true

			data, err := os.ReadFile(filepath.Join(env.store.Dir(storage.Documents), strings.TrimPrefix(doc, "/uploads/")))
			require.NoError(t, err)
			contents[string(data)] = true
		}
		assert.Equal(t, map[string]bool{"deed one": true, "deed two": true, "license": true}, contents)
	})

	t.Run("numeric distributor id in json", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(jsonRequest(http.MethodPost, "/api/bureau/create",
			`{"bureauName":"B","mobileNumber":"1","about":"a","location":"l","email":"b@example.com","ownerName":"o","distributorId":42,"password":"p"}`))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "42", env.bureaus.rows[0].DistributorID)
	})

	t.Run("missing fields are reported", func(t *testing.T) {
		env := newTestEnv(t)
		fields := bureauFields()
		delete(fields, "about")
		delete(fields, "ownerName")

		w := env.do(multipartRequest(t, http.MethodPost, "/api/bureau/create", fields, nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"about", "ownerName"}, body.Fields)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.addBureau(models.Bureau{ID: 1, BureauID: "1000000", Email: "sunrise@example.com", MobileNumber: "0"})

		w := env.do(multipartRequest(t, http.MethodPost, "/api/bureau/create", bureauFields(), nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Bureau already exists with this email or mobile number.")
	})
}

func TestParseCreatedAt(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got, err := parseCreatedAt("")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseCreatedAt("2024-05-01T10:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), *got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseCreatedAt("01/05/2024")
		assert.Error(t, err)
	})
}

package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	u, _ := url.Parse("https://minio.local:9000")
	assert.Equal(t, "https://minio.local:9000/exports-bucket/exports/a1/x.json",
		objectURL(u, "exports-bucket", "exports/a1/x.json"))

	assert.Equal(t, "http://localhost:9000/b/k", objectURL(&url.URL{Host: "localhost:9000"}, "b", "k"))
}

func TestAttachment(t *testing.T) {
	assert.Equal(t, `attachment; filename="Acme_Sensors_20261019_strategy.pdf"`, attachment("Acme_Sensors_20261019_strategy.pdf"))
	assert.Equal(t, "", attachment(""))
}

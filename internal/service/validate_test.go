package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"tierparse/internal/domain"
	"tierparse/internal/testutil"
)

const testMaxBytes = 10 * 1024 * 1024

func TestValidateDocument_AcceptsWellFormedPDF(t *testing.T) {
	assert.NoError(t, validateDocument(testutil.MinimalPDF(1), testMaxBytes))
	assert.NoError(t, validateDocument(testutil.MinimalPDF(5), testMaxBytes))
}

func TestValidateDocument_RejectsEmptyPayload(t *testing.T) {
	err := validateDocument(nil, testMaxBytes)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestValidateDocument_RejectsOversizedPayload(t *testing.T) {
	data := testutil.MinimalPDF(1)
	err := validateDocument(data, int64(len(data))-1)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestValidateDocument_RejectsNonDocumentBytes(t *testing.T) {
	err := validateDocument([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}, testMaxBytes)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestValidateDocument_RejectsPDFHeaderWithGarbageBody(t *testing.T) {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0xff, 0x00, 0x42}, 128)...)
	err := validateDocument(data, testMaxBytes)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

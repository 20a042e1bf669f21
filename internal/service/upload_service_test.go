package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	gotName string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, r io.Reader) (string, string, error) {
	f.gotName = filename
	_, _ = io.Copy(io.Discard, r)
	return "https://cdn.example.com/" + filename, "pub-" + filename, nil
}

func TestUploadRandomizesFilename(t *testing.T) {
	fake := &fakeUploader{}
	svc := NewUploadService(fake)

	res, err := svc.Upload(context.Background(), "头像.PNG", 128, strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	// 原文件名不外泄，只保留小写扩展名
	assert.NotContains(t, fake.gotName, "头像")
	assert.True(t, strings.HasSuffix(fake.gotName, ".png"))
	assert.NotEmpty(t, res.URL)
	assert.NotEmpty(t, res.PublicID)
}

func TestUploadRejectsBadInput(t *testing.T) {
	svc := NewUploadService(&fakeUploader{})

	_, err := svc.Upload(context.Background(), "shell.php", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrBadFileType)

	_, err = svc.Upload(context.Background(), "big.jpg", MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

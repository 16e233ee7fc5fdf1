package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"filegate/storage"
)

var classifyStamp = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestClassifyPhoto(t *testing.T) {
	m := &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "ph-1"}}}

	item, ok := classify(m, classifyStamp)
	require.True(t, ok)
	assert.Equal(t, storage.KindPhoto, item.Kind)
	assert.Equal(t, "ph-1", item.FileID)
	assert.Equal(t, "photo_20260314_150926.jpg", item.Name)
	assert.Zero(t, item.Size)
}

func TestClassifyVideo(t *testing.T) {
	m := &tele.Message{Video: &tele.Video{
		File:     tele.File{FileID: "vi-1", FileSize: 2048},
		FileName: "clip.mov",
	}}

	item, ok := classify(m, classifyStamp)
	require.True(t, ok)
	assert.Equal(t, storage.KindVideo, item.Kind)
	assert.Equal(t, "clip.mov", item.Name)
	assert.Equal(t, int64(2048), item.Size)
}

func TestClassifyVideoWithoutName(t *testing.T) {
	m := &tele.Message{Video: &tele.Video{File: tele.File{FileID: "vi-2"}}}

	item, ok := classify(m, classifyStamp)
	require.True(t, ok)
	assert.Equal(t, "video_20260314_150926.mp4", item.Name)
}

func TestClassifyDocument(t *testing.T) {
	m := &tele.Message{Document: &tele.Document{
		File:     tele.File{FileID: "doc-1", FileSize: 512},
		FileName: "report.pdf",
	}}

	item, ok := classify(m, classifyStamp)
	require.True(t, ok)
	assert.Equal(t, storage.KindDocument, item.Kind)
	assert.Equal(t, "report.pdf", item.Name)
	assert.Equal(t, int64(512), item.Size)
}

func TestClassifyRejectsTextOnlyMessages(t *testing.T) {
	_, ok := classify(&tele.Message{Text: "hello"}, classifyStamp)
	assert.False(t, ok)
}

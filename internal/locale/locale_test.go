package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"zh", Chinese},
		{"EN", English},
		{" en ", English},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "fr", "zh-CN"} {
		_, err := Parse(in)
		assert.True(t, errors.Is(err, ErrUnsupported), "expected ErrUnsupported for %q", in)
	}
}

func TestNextToggles(t *testing.T) {
	assert.Equal(t, English, Chinese.Next())
	assert.Equal(t, Chinese, English.Next())
	assert.Equal(t, Chinese, Chinese.Next().Next())
}

func TestTablesComplete(t *testing.T) {
	for _, code := range Supported() {
		tbl := Table(code)
		for name, v := range map[string]string{
			"title":     tbl.Title,
			"pause":     tbl.Pause,
			"resume":    tbl.Resume,
			"switch":    tbl.SwitchLanguage,
			"timer":     tbl.TimerPrefix,
			"seconds":   tbl.SecondsSuffix,
			"accuracy":  tbl.AccuracyPrefix,
			"hint":      tbl.Placeholder,
			"complete":  tbl.Complete,
			"load":      tbl.LoadPrompt,
			"loadError": tbl.LoadFailed,
			"dismiss":   tbl.Dismiss,
			"help":      tbl.Help,
		} {
			assert.NotEmpty(t, v, "%s: empty %s label", code, name)
		}
	}
	assert.Equal(t, "Well done!", Table(English).Complete)
	assert.Equal(t, Table(Default), Table(Code("xx")))
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, "这是一个中文打字练习示例。", DefaultText(Chinese))
	assert.Equal(t, "This is a sample typing practice text in English.", DefaultText(English))

	texts := Texts(English)
	require.Len(t, texts, 3)
	texts[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultText(English))
}

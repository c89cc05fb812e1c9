package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	l, c, err := New(Config{})
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keylink.log")
	l, c, err := New(Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	l.WithField("function", "test").Debug("hello")
	require.NoError(t, c.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"function":"test"`)
}

func TestNew_Invalid(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	_, _, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNotifiers(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify("PAKE is already executed")
	assert.Equal(t, "PAKE is already executed\n", buf.String())

	buf.Reset()
	l := logrus.New()
	l.SetOutput(&buf)
	Notifier{Log: l}.Notify("connected")
	assert.Contains(t, buf.String(), "connected")
}

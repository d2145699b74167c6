package command

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/tcsync/internal/config"
	"github.com/backmassage/tcsync/internal/timecode"
)

func defaultCfg(style config.DateStyle) *config.Config {
	cfg := config.DefaultConfig()
	cfg.DateStyle = style
	if style == config.DateStyleSetFile {
		cfg.DateToolPath = "SetFile"
	} else {
		cfg.DateToolPath = "touch"
	}
	return &cfg
}

func correction(t *testing.T, value string) timecode.Correction {
	t.Helper()
	c, err := timecode.Correct(value, 18*time.Second)
	require.NoError(t, err)
	return c
}

func TestRemux_Args(t *testing.T) {
	cfg := defaultCfg(config.DateStyleTouch)
	c := correction(t, "2014:05:01 19:58:07.500000")

	cmd := Remux(cfg, "clips/MVI_0001.MOV", "clips/TC_MVI_0001.MOV", c)

	assert.Equal(t, LabelRemux, cmd.Label)
	assert.Equal(t, "ffmpeg", cmd.Path)
	assert.Equal(t, []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-n",
		"-i", "clips/MVI_0001.MOV",
		"-vcodec", "copy", "-acodec", "copy",
		"-timecode", "19:57:49:00",
		"-metadata", "creation_time=2014-05-01 19:57:49",
		"-metadata", "date=2014-05-01",
		"clips/TC_MVI_0001.MOV",
	}, cmd.Args)
}

func TestRemux_VerboseAndForce(t *testing.T) {
	cfg := defaultCfg(config.DateStyleTouch)
	cfg.Verbose = true
	cfg.SkipExisting = false
	cfg.FrameDelta = "12"
	c := correction(t, "2014:05:01 19:58:07")

	args := strings.Join(Remux(cfg, "a.MOV", "TC_a.MOV", c).Args, " ")

	assert.Contains(t, args, "-loglevel info")
	assert.Contains(t, args, " -y ")
	assert.NotContains(t, args, " -n ")
	assert.Contains(t, args, "-timecode 19:57:49:12")
}

func TestTagCopy_Args(t *testing.T) {
	cmd := TagCopy(defaultCfg(config.DateStyleTouch), "MVI_0001.MOV", "TC_MVI_0001.MOV")

	assert.Equal(t, "exiftool", cmd.Path)
	assert.Equal(t, []string{"-overwrite_original", "-tagsFromFile", "MVI_0001.MOV", "TC_MVI_0001.MOV"}, cmd.Args)
}

func TestDateStamps_SetFile(t *testing.T) {
	c := correction(t, "2014:05:01 19:58:07")
	cmds := DateStamps(defaultCfg(config.DateStyleSetFile), "TC_MVI_0001.MOV", c)

	require.Len(t, cmds, 2)
	assert.Equal(t, LabelCreationDate, cmds[0].Label)
	assert.Equal(t, []string{"-d", "05/01/2014 19:57:49", "TC_MVI_0001.MOV"}, cmds[0].Args)
	assert.Equal(t, LabelModificationDate, cmds[1].Label)
	assert.Equal(t, []string{"-m", "05/01/2014 19:57:49", "TC_MVI_0001.MOV"}, cmds[1].Args)
	assert.Equal(t, "SetFile", cmds[0].Path)
}

func TestDateStamps_Touch(t *testing.T) {
	c := correction(t, "2014:05:01 19:58:07")
	cmds := DateStamps(defaultCfg(config.DateStyleTouch), "TC_MVI_0001.MOV", c)

	require.Len(t, cmds, 2)
	assert.Equal(t, LabelAccessDate, cmds[0].Label, "touch sets atime, not a creation time")
	assert.Equal(t, []string{"-a", "-d", "2014-05-01 19:57:49", "TC_MVI_0001.MOV"}, cmds[0].Args)
	assert.Equal(t, LabelModificationDate, cmds[1].Label)
	assert.Equal(t, []string{"-m", "-d", "2014-05-01 19:57:49", "TC_MVI_0001.MOV"}, cmds[1].Args)
}

func TestBuild_Order(t *testing.T) {
	c := correction(t, "2014:05:01 19:58:07")
	cmds := Build(defaultCfg(config.DateStyleTouch), "MVI_0001.MOV", "TC_MVI_0001.MOV", c)

	labels := make([]string, len(cmds))
	for i, cmd := range cmds {
		labels[i] = cmd.Label
	}
	assert.Equal(t, []string{LabelRemux, LabelTagCopy, LabelAccessDate, LabelModificationDate}, labels)
}

func TestArgPath_LeadingDash(t *testing.T) {
	cmd := TagCopy(defaultCfg(config.DateStyleTouch), "-odd.MOV", "TC_-odd.MOV")
	assert.Equal(t, "./-odd.MOV", cmd.Args[2])
	assert.Equal(t, "TC_-odd.MOV", cmd.Args[3])
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Path: "touch", Args: []string{"-m", "-d", "2014-05-01 19:57:49", "it's.MOV", ""}}
	assert.Equal(t, `touch -m -d '2014-05-01 19:57:49' 'it'\''s.MOV' ''`, cmd.String())
}

func TestExecute_CapturesOutputAndError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()

	ok := Execute(ctx, Command{Path: "sh", Args: []string{"-c", "echo out; echo err >&2"}}, false)
	require.NoError(t, ok.Err)
	assert.Equal(t, "out\n", ok.Stdout)
	assert.Equal(t, "err\n", ok.Stderr)

	bad := Execute(ctx, Command{Path: "sh", Args: []string{"-c", "exit 3"}}, false)
	assert.Error(t, bad.Err)
}

func TestExecute_MissingBinary(t *testing.T) {
	res := Execute(context.Background(), Command{Path: "/nonexistent/tcsync-tool"}, false)
	assert.Error(t, res.Err)
}

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// binaryPath holds the path to the compiled penplot binary. Set in TestMain.
var binaryPath string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "penplot-test-bin-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binaryPath = filepath.Join(tmp, "penplot")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = rootDir()
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		binaryPath = ""
		os.Exit(m.Run())
	}

	os.Exit(m.Run())
}

func rootDir() string {
	dir, err := filepath.Abs(".")
	if err != nil {
		panic(err)
	}
	return dir
}

func skipIfNoBinary(t *testing.T) {
	t.Helper()
	if binaryPath == "" {
		t.Skip("penplot binary not built; skipping")
	}
}

func runPenplot(t *testing.T, args ...string) (stdout, stderr []byte, err error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// createTestPNG generates a 40x40 white image with a 20x20 black filled
// block, enough to give both the edge and the fill converters input.
func createTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
		}
	}
	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test PNG: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encoding test PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing test PNG: %v", err)
	}
	return path
}

func TestRun_EdgeProducesStrokeFile(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := createTestPNG(t, dir)
	outPath := filepath.Join(dir, "out.stroke")

	_, stderr, err := runPenplot(t, "run", "--input", pngPath, "--out", outPath, "--converter", "edge")
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, stderr)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading stroke file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("stroke file is empty")
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 1 {
		t.Fatal("stroke file has no header line")
	}
}

func TestRun_FillProducesStrokeFile(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := createTestPNG(t, dir)
	outPath := filepath.Join(dir, "out.stroke")

	_, stderr, err := runPenplot(t, "run", "--input", pngPath, "--out", outPath, "--converter", "fill", "--hatch-spacing", "3")
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, stderr)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading stroke file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("stroke file is empty")
	}
}

func TestRun_PreviewWritesPNG(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := createTestPNG(t, dir)
	outPath := filepath.Join(dir, "out.stroke")
	previewPath := filepath.Join(dir, "preview.png")

	_, stderr, err := runPenplot(t, "run", "--input", pngPath, "--out", outPath, "--preview", previewPath)
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, stderr)
	}

	f, err := os.Open(previewPath)
	if err != nil {
		t.Fatalf("opening preview PNG: %v", err)
	}
	defer f.Close()
	if _, err := png.DecodeConfig(f); err != nil {
		t.Fatalf("preview is not a valid PNG: %v", err)
	}
}

func TestRun_MissingInputFails(t *testing.T) {
	skipIfNoBinary(t)
	_, _, err := runPenplot(t, "run")
	if err == nil {
		t.Fatal("expected non-zero exit for missing --input, got nil")
	}
}

func TestRun_UnknownConverterKindFails(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := createTestPNG(t, dir)

	_, _, err := runPenplot(t, "run", "--input", pngPath, "--converter", "bogus")
	if err == nil {
		t.Fatal("expected non-zero exit for unknown converter kind, got nil")
	}
}

func TestStagedPipeline_ColormapConvertVectorizePlanOptimize(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := createTestPNG(t, dir)

	colormapPath := filepath.Join(dir, "colormap.gob")
	_, stderr, err := runPenplot(t, "colormap", "--input", pngPath, "--out", colormapPath)
	if err != nil {
		t.Fatalf("colormap failed: %v\nstderr: %s", err, stderr)
	}

	masksetPath := filepath.Join(dir, "maskset.gob")
	_, stderr, err = runPenplot(t, "convert", "--colormap", colormapPath, "--image", pngPath, "--out", masksetPath, "--kind", "edge")
	if err != nil {
		t.Fatalf("convert failed: %v\nstderr: %s", err, stderr)
	}

	vectorPath := filepath.Join(dir, "vectordata.gob")
	_, stderr, err = runPenplot(t, "vectorize", "--in", masksetPath, "--out", vectorPath)
	if err != nil {
		t.Fatalf("vectorize failed: %v\nstderr: %s", err, stderr)
	}

	plannedPath := filepath.Join(dir, "planned.gob")
	_, stderr, err = runPenplot(t, "plan", "--in", vectorPath, "--out", plannedPath)
	if err != nil {
		t.Fatalf("plan failed: %v\nstderr: %s", err, stderr)
	}

	drawPath := filepath.Join(dir, "drawpath.gob")
	_, stderr, err = runPenplot(t, "optimize", "--in", plannedPath, "--out", drawPath, "--report")
	if err != nil {
		t.Fatalf("optimize failed: %v\nstderr: %s", err, stderr)
	}

	if _, err := os.Stat(drawPath); err != nil {
		t.Fatalf("expected drawpath output: %v", err)
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	skipIfNoBinary(t)
	stdout, _, err := runPenplot(t)
	if err != nil {
		t.Fatalf("expected zero exit with no args (cobra prints help), got: %v", err)
	}
	if !strings.Contains(string(stdout), "Usage") {
		t.Errorf("expected usage text in stdout, got: %s", stdout)
	}
}

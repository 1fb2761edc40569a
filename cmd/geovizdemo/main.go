// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command geovizdemo renders a small scene headlessly through the
// software rasterizer and saves the result as a PNG, without opening
// a window or touching a GPU device.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/gogpu/geoviz/engine"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/registry"
	"github.com/gogpu/geoviz/structure/pointcloud"
	"github.com/gogpu/geoviz/structure/surfacemesh"
	"github.com/gogpu/geoviz/structure/volumegrid"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		output = flag.String("output", "demo.png", "output file")
		ssaa   = flag.Int("ssaa", 1, "supersampling factor (1, 2, or 4)")
	)
	flag.Parse()

	scene := registry.NewContext()
	addPointCloudDemo(scene)
	addSurfaceMeshDemo(scene)
	addIsosurfaceDemo(scene)

	e, err := engine.NewEngine(scene, *width, *height)
	if err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}
	e.Camera = engine.NewCamera(gpumath.Vec3{X: 2.5, Y: 2, Z: 4}, gpumath.Vec3{})
	e.Camera.Aspect = float32(*width) / float32(*height)
	if err := e.SetSSAA(engine.SSAAFactor(*ssaa)); err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}

	img, err := e.Render()
	if err != nil {
		log.Fatalf("geovizdemo: render failed: %v", err)
	}

	if err := savePNG(*output, *width, *height, img); err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}
	log.Printf("geovizdemo: wrote %s (%dx%d, ssaa=%d)\n", *output, *width, *height, *ssaa)
}

// addPointCloudDemo scatters points around a ring so the rendered
// scene has billboarded-sphere coverage away from the scene origin.
func addPointCloudDemo(scene *registry.Context) {
	const n = 64
	points := make([]gpumath.Vec3, n)
	for i := range points {
		t := float64(i) / float64(n) * 2 * math.Pi
		points[i] = gpumath.Vec3{
			X: float32(math.Cos(t)) * 1.5,
			Y: 0.2,
			Z: float32(math.Sin(t)) * 1.5,
		}
	}
	pc := pointcloud.New("ring", points)
	pc.Radius = 0.05
	if err := scene.Add("pointcloud", pc); err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}
}

// addSurfaceMeshDemo adds a small tetrahedron so the opaque pass has
// triangle coverage to shade and pick against.
func addSurfaceMeshDemo(scene *registry.Context) {
	verts := []gpumath.Vec3{
		{X: 0, Y: 1, Z: 0},
		{X: -1, Y: -1, Z: 1},
		{X: 1, Y: -1, Z: 1},
		{X: 0, Y: -1, Z: -1},
	}
	faces := [][]uint32{
		{0, 1, 2},
		{0, 2, 3},
		{0, 3, 1},
		{1, 3, 2},
	}
	mesh := surfacemesh.New("tetrahedron", verts, faces)
	if err := scene.Add("surfacemesh", mesh); err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}
}

// addIsosurfaceDemo extracts a sphere isosurface from a sampled
// signed-distance field and registers the resulting volume grid,
// exercising the marching-cubes extraction path end to end.
func addIsosurfaceDemo(scene *registry.Context) {
	const res = 16
	origin := gpumath.Vec3{X: -1.5, Y: -1.5, Z: -1.5}
	spacing := float32(3.0 / (res - 1))
	grid := volumegrid.New("blob", res, res, res, origin, spacing)

	field := make([]float32, res*res*res)
	for z := 0; z < res; z++ {
		for y := 0; y < res; y++ {
			for x := 0; x < res; x++ {
				p := gpumath.Vec3{
					X: origin.X + float32(x)*spacing,
					Y: origin.Y + float32(y)*spacing,
					Z: origin.Z + float32(z)*spacing,
				}
				i, err := grid.Flatten(x, y, z)
				if err != nil {
					log.Fatalf("geovizdemo: %v", err)
				}
				field[i] = p.Length() - 1
			}
		}
	}

	grid.RequestIsosurface(0)
	if err := grid.RecomputeIsosurface(field); err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}
	if err := scene.Add("volumegrid", grid); err != nil {
		log.Fatalf("geovizdemo: %v", err)
	}
}

func savePNG(path string, width, height int, rgba []byte) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)
	return png.Encode(f, img)
}

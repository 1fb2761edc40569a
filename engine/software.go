// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// CPU rasterization path, grounded in the teacher's render.SoftwareRenderer:
// a renderer with no GPU dependency that type-switches over drawable
// commands and fills a CPU pixel buffer directly. Here the "commands"
// are the registry's visible structures rather than 2D path-fill ops,
// and the fill algorithm is a flat-shaded, z-buffered triangle
// rasterizer instead of analytic path coverage — but the shape is the
// same: a single Render entry point that needs nothing but a pixel
// buffer to produce an image, which is what lets S1-S3 and S6 style
// tests run with no GPU adapter at all.
package engine

import (
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/sliceplane"
	"github.com/gogpu/geoviz/structure"
	"github.com/gogpu/geoviz/structure/cameraview"
	"github.com/gogpu/geoviz/structure/curvenetwork"
	"github.com/gogpu/geoviz/structure/pointcloud"
	"github.com/gogpu/geoviz/structure/surfacemesh"
	"github.com/gogpu/geoviz/structure/volumegrid"
	"github.com/gogpu/geoviz/structure/volumemesh"
)

// clipVertex is a projected vertex ready for rasterization: x/y in
// pixel space, z in [0,1] depth-buffer space.
type clipVertex struct {
	x, y, z float32
	ok      bool
}

func project(vp gpumath.Mat4, width, height int, p gpumath.Vec3) clipVertex {
	v4 := vp.MulVec4(gpumath.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if v4.W <= 0 {
		return clipVertex{}
	}
	ndcX := v4.X / v4.W
	ndcY := v4.Y / v4.W
	ndcZ := v4.Z / v4.W
	return clipVertex{
		x:  (ndcX*0.5 + 0.5) * float32(width),
		y:  (1 - (ndcY*0.5 + 0.5)) * float32(height),
		z:  ndcZ,
		ok: true,
	}
}

// rasterizeTriangle fills a screen-space triangle using edge
// functions for the inside test and barycentric interpolation for
// depth, writing pickID into fb.pick wherever the triangle wins the
// depth test (a pickID of 0 is written as-is and resolves as a miss).
func rasterizeTriangle(fb *framebuffer, a, b, c clipVertex, color gpumath.RGB, pickID uint32) {
	if !a.ok || !b.ok || !c.ok {
		return
	}
	minX := clampi(int(minOf3(a.x, b.x, c.x)), 0, fb.width-1)
	maxX := clampi(int(maxOf3(a.x, b.x, c.x))+1, 0, fb.width-1)
	minY := clampi(int(minOf3(a.y, b.y, c.y)), 0, fb.height-1)
	maxY := clampi(int(maxOf3(a.y, b.y, c.y))+1, 0, fb.height-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edge(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(b.x, b.y, c.x, c.y, px, py) / area
			w1 := edge(c.x, c.y, a.x, a.y, px, py) / area
			w2 := edge(a.x, a.y, b.x, b.y, px, py) / area
			if (w0 < 0 || w1 < 0 || w2 < 0) && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if !fb.testAndSetDepth(x, y, z) {
				continue
			}
			i := fb.index(x, y)
			fb.hdr[i] = color
			fb.pick[i] = pickID
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

// rasterizeSegment draws a thin line as a 2*halfWidthPx-wide quad of two
// triangles so it participates in the same z-buffered triangle path
// as everything else, rather than needing a separate Bresenham pass.
func rasterizeSegment(fb *framebuffer, a, b clipVertex, halfWidthPx float32, color gpumath.RGB, pickID uint32) {
	if !a.ok || !b.ok {
		return
	}
	dx, dy := b.x-a.x, b.y-a.y
	length := sqrt32(dx*dx + dy*dy)
	if length < 1e-6 {
		return
	}
	nx, ny := -dy/length*halfWidthPx, dx/length*halfWidthPx
	p0 := clipVertex{a.x + nx, a.y + ny, a.z, true}
	p1 := clipVertex{a.x - nx, a.y - ny, a.z, true}
	p2 := clipVertex{b.x + nx, b.y + ny, b.z, true}
	p3 := clipVertex{b.x - nx, b.y - ny, b.z, true}
	rasterizeTriangle(fb, p0, p1, p2, color, pickID)
	rasterizeTriangle(fb, p1, p3, p2, color, pickID)
}

func sqrt32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	lo, hi := float32(0), v
	if hi < 1 {
		hi = 1
	}
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		if mid*mid < v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// drawOpaque rasterizes the opaque pass (spec.md §4.8 step 3) for
// every visible structure, flat-shaded using each structure's active
// scalar quantity color (when present) or its flat color otherwise,
// discarding any geometry excluded by planes (spec.md §4.2's
// per-fragment slice-plane test, approximated here per-point,
// per-triangle-centroid, or per-edge-midpoint since the rasterizer has
// no per-pixel world position to test against).
// Transparency, shadows, reflections, SSAO, and depth peeling have no
// CPU fallback: they require the GPU's render-to-texture and blend
// hardware this path does not emulate, so the software path covers
// only the subset spec.md's headless test scenarios (§8 S1-S3, S6)
// actually exercise.
func drawOpaque(fb *framebuffer, vp gpumath.Mat4, structures []structure.Structure, planes *sliceplane.Set, ids func(structure.Structure) []uint32) {
	for _, s := range structures {
		xf := s.Transform()
		pickIDs := ids(s)
		switch st := s.(type) {
		case *pointcloud.PointCloud:
			drawPoints(fb, vp, xf, st, planes, pickIDs)
		case *surfacemesh.SurfaceMesh:
			drawSurfaceMesh(fb, vp, xf, st, planes, pickIDs)
		case *curvenetwork.CurveNetwork:
			drawCurveNetwork(fb, vp, xf, st, planes, pickIDs)
		case *volumemesh.VolumeMesh:
			// Volume meshes clip structurally (spec.md §4.2): a plane
			// removes whole cells rather than discarding fragments, so
			// the cut is applied to the cell list itself before the
			// exterior faces are recomputed and drawn.
			st.CullByPlanes(planes)
			drawVolumeMesh(fb, vp, xf, st, pickIDs)
		case *volumegrid.VolumeGrid:
			drawVolumeGrid(fb, vp, xf, st, pickIDs)
		case *cameraview.CameraView:
			drawFrustum(fb, vp, xf, st, pickIDs)
		}
	}
}

func fanOrSelf(sm *surfacemesh.SurfaceMesh) [][3]uint32 {
	tris, _, err := sm.FanTriangulate()
	if err != nil {
		return nil
	}
	return triplesFromIndices(tris)
}

func triplesFromIndices(idx []uint32) [][3]uint32 {
	out := make([][3]uint32, 0, len(idx)/3)
	for i := 0; i+2 < len(idx); i += 3 {
		out = append(out, [3]uint32{idx[i], idx[i+1], idx[i+2]})
	}
	return out
}

func triangulateFaces(faces [][]uint32) [][3]uint32 {
	var out [][3]uint32
	for _, f := range faces {
		for i := 1; i+1 < len(f); i++ {
			out = append(out, [3]uint32{f[0], f[i], f[i+1]})
		}
	}
	return out
}

func pickIDFor(ids []uint32, i int) uint32 {
	if ids == nil || i >= len(ids) {
		return 0
	}
	return ids[i]
}

// elementCountOf returns how many pickable primitives a structure
// draws (points, triangles, or edges depending on kind), the count
// pick.Table.Allocate needs to reserve a contiguous id range.
func elementCountOf(s structure.Structure) int {
	switch st := s.(type) {
	case *pointcloud.PointCloud:
		return len(st.Points)
	case *surfacemesh.SurfaceMesh:
		return len(fanOrSelf(st))
	case *curvenetwork.CurveNetwork:
		if st.Mode == curvenetwork.RenderTube {
			return len(st.Edges) + len(st.Vertices)
		}
		return len(st.Edges)
	case *volumemesh.VolumeMesh:
		return len(triangulateFaces(st.ExteriorFaces()))
	case *volumegrid.VolumeGrid:
		return gridcubeElementCount(st)
	case *cameraview.CameraView:
		return 12 // frustum edge count, see drawFrustum
	default:
		return 0
	}
}

func drawPoints(fb *framebuffer, vp gpumath.Mat4, xf gpumath.Mat4, pc *pointcloud.PointCloud, planes *sliceplane.Set, ids []uint32) {
	scalar := pc.ActiveScalar()
	for i, p := range pc.Points {
		world := xf.MulPoint(p)
		if !planes.IsKept(world) {
			continue
		}
		v := project(vp, fb.width, fb.height, world)
		if !v.ok {
			continue
		}
		color := pc.PointColor
		if scalar != nil {
			color = scalar.ColorAt(i)
		}
		radiusPx := float32(4)
		a := clipVertex{v.x - radiusPx, v.y - radiusPx, v.z, true}
		b := clipVertex{v.x + radiusPx, v.y - radiusPx, v.z, true}
		c := clipVertex{v.x + radiusPx, v.y + radiusPx, v.z, true}
		d := clipVertex{v.x - radiusPx, v.y + radiusPx, v.z, true}
		rasterizeTriangle(fb, a, b, c, color, pickIDFor(ids, i))
		rasterizeTriangle(fb, a, c, d, color, pickIDFor(ids, i))
	}
}

func drawTriMesh(fb *framebuffer, vp, xf gpumath.Mat4, verts []gpumath.Vec3, tris [][3]uint32, color gpumath.RGB, ids []uint32) {
	for fi, t := range tris {
		a := project(vp, fb.width, fb.height, xf.MulPoint(verts[t[0]]))
		b := project(vp, fb.width, fb.height, xf.MulPoint(verts[t[1]]))
		c := project(vp, fb.width, fb.height, xf.MulPoint(verts[t[2]]))
		rasterizeTriangle(fb, a, b, c, color, pickIDFor(ids, fi))
	}
}

// cubeCorners are the eight corners of a unit cube centered on the
// origin, in the fixed winding cubeFaces expects.
var cubeCorners = [8]gpumath.Vec3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

// cubeFaces lists each of the cube's six faces as a clockwise (seen
// from outside) quad of cubeCorners indices.
var cubeFaces = [6][4]int{
	{0, 1, 2, 3}, // -z
	{5, 4, 7, 6}, // +z
	{4, 0, 3, 7}, // -x
	{1, 5, 6, 2}, // +x
	{4, 5, 1, 0}, // -y
	{3, 2, 6, 7}, // +y
}

// drawCube rasterizes a world-space axis-aligned cube centered at
// center with the given half-extent, used for gridcube visualization
// and curve-network node-joint impostors.
func drawCube(fb *framebuffer, vp, xf gpumath.Mat4, center gpumath.Vec3, halfSize float32, color gpumath.RGB, pickID uint32) {
	var corners [8]gpumath.Vec3
	for i, c := range cubeCorners {
		corners[i] = gpumath.Vec3{X: center.X + c.X*halfSize, Y: center.Y + c.Y*halfSize, Z: center.Z + c.Z*halfSize}
	}
	drawOrientedBox(fb, vp, xf, corners, color, pickID)
}

// drawOrientedBox rasterizes an arbitrary (not necessarily
// axis-aligned) hexahedron given its eight corners in cubeCorners'
// winding order.
func drawOrientedBox(fb *framebuffer, vp, xf gpumath.Mat4, corners [8]gpumath.Vec3, color gpumath.RGB, pickID uint32) {
	var projected [8]clipVertex
	for i, c := range corners {
		projected[i] = project(vp, fb.width, fb.height, xf.MulPoint(c))
	}
	for _, f := range cubeFaces {
		a, b, c, d := projected[f[0]], projected[f[1]], projected[f[2]], projected[f[3]]
		rasterizeTriangle(fb, a, b, c, color, pickID)
		rasterizeTriangle(fb, a, c, d, color, pickID)
	}
}

// tubeCorners builds the eight corners of an oriented box spanning
// p0 to p1 with a square cross-section of half-width radius,
// approximating a cylindrical tube segment (spec.md §4.4.3's Tube
// render mode) within the rasterizer's flat-quad primitive set.
func tubeCorners(p0, p1 gpumath.Vec3, radius float32) [8]gpumath.Vec3 {
	axis := p1.Sub(p0)
	if length := axis.Length(); length > 1e-8 {
		axis = axis.Scale(1 / length)
	} else {
		axis = gpumath.Vec3{Z: 1}
	}
	up := gpumath.Vec3{Y: 1}
	if axis.Y > 0.9 || axis.Y < -0.9 {
		up = gpumath.Vec3{X: 1}
	}
	u := axis.Cross(up).Normalize()
	v := axis.Cross(u).Normalize()

	var corners [8]gpumath.Vec3
	for i, c := range cubeCorners {
		base := p0
		if c.Z > 0 {
			base = p1
		}
		corners[i] = base.Add(u.Scale(c.X * radius)).Add(v.Scale(c.Y * radius))
	}
	return corners
}

// gridcubeElementCount mirrors drawVolumeGrid's branch so the pick-id
// allocator reserves exactly as many ids as primitives actually drawn.
func gridcubeElementCount(g *volumegrid.VolumeGrid) int {
	scalar := g.ActiveScalar()
	if scalar != nil && scalar.Mode == volumegrid.VizIsosurface {
		if mesh, ok := g.CachedIsosurface(); ok {
			return len(mesh.Indices) / 3
		}
		return 0
	}
	if !g.ShowGridcube() {
		return 0
	}
	nx, ny, nz := g.Nx, g.Ny, g.Nz
	if scalar != nil && scalar.PerCell {
		nx, ny, nz = nx-1, ny-1, nz-1
	}
	return nx * ny * nz
}

// drawVolumeGrid renders a volume grid per spec.md §4.4.5: when the
// active scalar quantity (if any) is in VizIsosurface mode, draw its
// cached marching-cubes mesh through the flat triangle path; otherwise
// draw gridcube visualization (a small colored cube at each node, or
// cell center for a per-cell quantity), gated by ShowGridcube.
func drawVolumeGrid(fb *framebuffer, vp, xf gpumath.Mat4, g *volumegrid.VolumeGrid, ids []uint32) {
	scalar := g.ActiveScalar()
	if scalar != nil && scalar.Mode == volumegrid.VizIsosurface {
		if mesh, ok := g.CachedIsosurface(); ok {
			drawTriMesh(fb, vp, xf, mesh.Vertices, triplesFromIndices(mesh.Indices), gpumath.RGB{R: 0.6, G: 0.8, B: 0.9}, ids)
		}
		return
	}
	if !g.ShowGridcube() {
		return
	}
	drawGridcubes(fb, vp, xf, g, scalar, ids)
}

func drawGridcubes(fb *framebuffer, vp, xf gpumath.Mat4, g *volumegrid.VolumeGrid, scalar *volumegrid.ScalarQuantity, ids []uint32) {
	sizeFactor := float32(0.5)
	if scalar != nil {
		sizeFactor = scalar.CubeSizeFactor
	}
	half := g.Spacing * sizeFactor * 0.5
	color := gpumath.RGB{R: 0.7, G: 0.7, B: 0.7}
	perCell := scalar != nil && scalar.PerCell

	nx, ny, nz := g.Nx, g.Ny, g.Nz
	if perCell {
		nx, ny, nz = nx-1, ny-1, nz-1
	}

	id := 0
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				var center gpumath.Vec3
				if perCell {
					lo, _ := g.PositionOfNode(x, y, z)
					hi, _ := g.PositionOfNode(x+1, y+1, z+1)
					center = lo.Add(hi).Scale(0.5)
				} else {
					center, _ = g.PositionOfNode(x, y, z)
				}
				shade := color
				if scalar != nil {
					shade = scalar.ColorAt((x*ny+y)*nz + z)
				}
				drawCube(fb, vp, xf, center, half, shade, pickIDFor(ids, id))
				id++
			}
		}
	}
}

// drawSurfaceMesh rasterizes a surface mesh's fan-triangulated faces,
// flat-shading each triangle by its active scalar or color quantity
// when present (averaged over the triangle's three corners — the
// software path has no per-pixel interpolation, only per-primitive
// flat shading) and falling back to SurfaceColor otherwise.
func drawSurfaceMesh(fb *framebuffer, vp, xf gpumath.Mat4, sm *surfacemesh.SurfaceMesh, planes *sliceplane.Set, ids []uint32) {
	tris, triFace, err := sm.FanTriangulate()
	if err != nil {
		return
	}
	scalar := sm.ActiveScalar()
	color := sm.ActiveColor()
	for fi := 0; fi+2 < len(tris); fi += 3 {
		ti := fi / 3
		v0, v1, v2 := tris[fi], tris[fi+1], tris[fi+2]
		p0 := xf.MulPoint(sm.Vertices[v0])
		p1 := xf.MulPoint(sm.Vertices[v1])
		p2 := xf.MulPoint(sm.Vertices[v2])
		centroid := p0.Add(p1).Add(p2).Scale(1.0 / 3)
		if !planes.IsKept(centroid) {
			continue
		}
		a := project(vp, fb.width, fb.height, p0)
		b := project(vp, fb.width, fb.height, p1)
		c := project(vp, fb.width, fb.height, p2)
		shade := sm.SurfaceColor
		switch {
		case scalar != nil:
			shade = triangleScalarColor(scalar, triFace[ti], v0, v1, v2)
		case color != nil:
			shade = triangleQuantityColor(color, triFace[ti], v0, v1, v2)
		case sm.Material != nil:
			n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
			if matcap, ok := sm.Material.SampleViewNormal(n); ok {
				shade = matcap
			}
		}
		rasterizeTriangle(fb, a, b, c, shade, pickIDFor(ids, ti))
	}
}

func triangleScalarColor(q *surfacemesh.ScalarQuantity, face int, v0, v1, v2 uint32) gpumath.RGB {
	if q.PerFace {
		return q.ColorAt(face)
	}
	c0, c1, c2 := q.ColorAt(int(v0)), q.ColorAt(int(v1)), q.ColorAt(int(v2))
	return averageRGB(c0, c1, c2)
}

func triangleQuantityColor(q *surfacemesh.ColorQuantity, face int, v0, v1, v2 uint32) gpumath.RGB {
	if q.PerFace {
		rgb, _ := q.ColorAt(face)
		return rgb
	}
	c0, _ := q.ColorAt(int(v0))
	c1, _ := q.ColorAt(int(v1))
	c2, _ := q.ColorAt(int(v2))
	return averageRGB(c0, c1, c2)
}

func averageRGB(a, b, c gpumath.RGB) gpumath.RGB {
	return gpumath.RGB{
		R: (a.R + b.R + c.R) / 3,
		G: (a.G + b.G + c.G) / 3,
		B: (a.B + b.B + c.B) / 3,
	}
}

func average2RGB(a, b gpumath.RGB) gpumath.RGB {
	return gpumath.RGB{R: (a.R + b.R) / 2, G: (a.G + b.G) / 2, B: (a.B + b.B) / 2}
}

// drawCurveNetwork draws a curve network's edges, shaded by the
// active node/edge scalar or color quantity when present. In
// RenderTube mode each edge is expanded into an oriented tube and
// each node gets a joint impostor (spec.md §4.4.3); RenderLine draws
// plain screen-space-width segments.
func drawCurveNetwork(fb *framebuffer, vp, xf gpumath.Mat4, cn *curvenetwork.CurveNetwork, planes *sliceplane.Set, ids []uint32) {
	scalar := cn.ActiveScalar()
	quantColor := cn.ActiveColor()
	edgeColor := func(ei int, e [2]uint32) gpumath.RGB {
		switch {
		case scalar != nil:
			if scalar.PerEdge {
				return scalar.ColorAt(ei)
			}
			return average2RGB(scalar.ColorAt(int(e[0])), scalar.ColorAt(int(e[1])))
		case quantColor != nil:
			if quantColor.PerEdge {
				return quantColor.Colors[ei]
			}
			return average2RGB(quantColor.Colors[e[0]], quantColor.Colors[e[1]])
		default:
			return cn.Color
		}
	}

	if cn.Mode == curvenetwork.RenderTube {
		for ei, e := range cn.Edges {
			p0, p1 := xf.MulPoint(cn.Vertices[e[0]]), xf.MulPoint(cn.Vertices[e[1]])
			if !planes.IsKept(p0.Add(p1).Scale(0.5)) {
				continue
			}
			corners := tubeCorners(cn.Vertices[e[0]], cn.Vertices[e[1]], cn.Radius)
			drawOrientedBox(fb, vp, xf, corners, edgeColor(ei, e), pickIDFor(ids, ei))
		}
		for vi, v := range cn.Vertices {
			if !planes.IsKept(xf.MulPoint(v)) {
				continue
			}
			drawCube(fb, vp, xf, v, cn.Radius*1.3, cn.Color, pickIDFor(ids, len(cn.Edges)+vi))
		}
		return
	}

	halfWidthPx := cn.Radius * 200
	if halfWidthPx < 1 {
		halfWidthPx = 1
	}
	for ei, e := range cn.Edges {
		p0, p1 := xf.MulPoint(cn.Vertices[e[0]]), xf.MulPoint(cn.Vertices[e[1]])
		if !planes.IsKept(p0.Add(p1).Scale(0.5)) {
			continue
		}
		a := project(vp, fb.width, fb.height, p0)
		b := project(vp, fb.width, fb.height, p1)
		rasterizeSegment(fb, a, b, halfWidthPx, edgeColor(ei, e), pickIDFor(ids, ei))
	}
}

// drawVolumeMesh draws a volume mesh's exterior faces, shaded by the
// active vertex/cell scalar or color quantity when present.
func drawVolumeMesh(fb *framebuffer, vp, xf gpumath.Mat4, vm *volumemesh.VolumeMesh, ids []uint32) {
	faces := vm.ExteriorFaces()
	cellOf := vm.ExteriorFaceCells()
	tris := triangulateFaces(faces)
	scalar := vm.ActiveScalar()
	quantColor := vm.ActiveColor()
	fi, triIdx := 0, 0
	for faceIdx, face := range faces {
		nTris := len(face) - 2
		for t := 0; t < nTris; t++ {
			tri := tris[triIdx]
			triIdx++
			a := project(vp, fb.width, fb.height, xf.MulPoint(vm.Vertices[tri[0]]))
			b := project(vp, fb.width, fb.height, xf.MulPoint(vm.Vertices[tri[1]]))
			c := project(vp, fb.width, fb.height, xf.MulPoint(vm.Vertices[tri[2]]))
			color := vm.Color
			switch {
			case scalar != nil:
				color = triangleVolumeMeshColor(scalar.PerCell, scalar.ColorAt, cellOf[faceIdx], tri)
			case quantColor != nil:
				color = triangleVolumeMeshColor(quantColor.PerCell, func(i int) gpumath.RGB { return quantColor.Colors[i] }, cellOf[faceIdx], tri)
			}
			rasterizeTriangle(fb, a, b, c, color, pickIDFor(ids, fi))
			fi++
		}
	}
}

// triangleVolumeMeshColor shades a volume-mesh triangle: for a cell
// quantity it uses the triangle's owning cell index directly (every
// triangle belonging to a cell gets that cell's color, per spec.md
// §4.4.4); for a vertex quantity it averages the triangle's three
// corners (the software path has no per-pixel interpolation).
func triangleVolumeMeshColor(perCell bool, colorAt func(int) gpumath.RGB, cell int, tri [3]uint32) gpumath.RGB {
	if perCell {
		return colorAt(cell)
	}
	return averageRGB(colorAt(int(tri[0])), colorAt(int(tri[1])), colorAt(int(tri[2])))
}

func drawFrustum(fb *framebuffer, vp, xf gpumath.Mat4, cv *cameraview.CameraView, ids []uint32) {
	corners := cv.FrustumCorners()
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // near quad
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // far quad
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
	}
	pts := make([]gpumath.Vec3, len(corners))
	copy(pts, corners[:])
	for ei, e := range edges {
		a := project(vp, fb.width, fb.height, xf.MulPoint(pts[e[0]]))
		b := project(vp, fb.width, fb.height, xf.MulPoint(pts[e[1]]))
		rasterizeSegment(fb, a, b, 1, cv.Color, pickIDFor(ids, ei))
	}
}

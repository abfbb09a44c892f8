// Package quarkgl is a small software 3D renderer for the cube scenes.
//
// A Scene holds point clouds, line sets and triangle meshes plus one camera
// and one light setup. A Renderer draws a Scene into any Target; Viewport
// carves a rectangle out of a larger Target so several scenes can share one
// framebuffer without sharing any render state.
//
// Pipeline (fixed):
//
//	Scene → View → Projection → Clip → Rasterize → Target.
//
// Matrices are column-major float32 (m[col*4+row]). The renderer avoids
// allocations in the render hot path.
package quarkgl

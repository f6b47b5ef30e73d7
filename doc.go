// Package adaptview is a 2D camera that keeps a world region presented
// sensibly while the drawable surface changes size.
//
// A [View] maps a world rectangle (center, size, rotation) onto a fraction
// of the surface called the viewport. Its [View.Transform] takes world
// points to normalized device coordinates in [-1,1] and is cached until the
// view changes.
//
// # Adaptive views
//
// An [AdaptiveView] pairs a View with a [Policy] that decides what happens
// when the surface is resized:
//
//   - [PolicyStretch] keeps the world size and fills the surface, distorting
//     the aspect ratio.
//   - [PolicyFit] keeps the world size and aspect ratio and shrinks the
//     viewport, producing letterbox or pillarbox bars.
//   - [PolicyFill] fills the surface and crops world content on one axis.
//   - [PolicyExtend] fills the surface and shows more world on one axis.
//   - [PolicyScreen] maps one world unit to one pixel.
//
// Policies are computed from the baseline world size, captured at
// construction and updated by SetSize, Zoom and Reset, so repeated resizes
// never compound.
//
// # Registry
//
// A [Registry] owns several adaptive views and forwards resize events to
// each of them in registration order:
//
//	reg := adaptview.NewRegistry()
//	_, world, _ := reg.NewView(adaptview.PolicyExtend, adaptview.Vec2{}, adaptview.Vec2{X: 480, Y: 480})
//	_, hud, _ := reg.NewView(adaptview.PolicyScreen, adaptview.Vec2{}, adaptview.Vec2{X: 1, Y: 1})
//
//	for _, ev := range events {
//		if err := reg.Update(ev); err != nil {
//			log.Print(err)
//		}
//	}
//
// Views are addressed by [ViewHandle]. A handle to a removed view never
// resolves again, even after its slot is reused.
//
// # Surfaces
//
// [Surface] drives a Registry from an [Ebitengine] game loop and offers
// [View.GeoM] and [View.SubImage] for drawing through a view. The tcellview
// package does the same for terminals via [tcell], treating each cell as a
// pixel. The ecs module publishes applied resizes into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [Donburi]: https://github.com/yohamta/donburi
package adaptview

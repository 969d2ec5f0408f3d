// Package bramble is a minimal 2D scene-rendering runtime for [Ebitengine].
//
// Bramble drives a per-frame loop over z-ordered sprites, resolves overlap
// between rotatable rectangles and circles, preloads a scene's resources
// behind a progress screen, and turns raw mouse and multi-touch input into
// disambiguated click, drag, and pinch-zoom signals delivered once per tick.
//
// # Quick start
//
//	cfg := bramble.DefaultConfig()
//	engine := bramble.NewEngine(cfg)
//	engine.Register("title", &TitleScene{})
//	engine.Switch("title")
//	if err := bramble.Run(engine, cfg); err != nil {
//		log.Fatal(err)
//	}
//
// A [Scene] is one screen of the application: Init runs once when the scene
// activates, Run once per tick. Scenes opt into input signals by
// implementing [ClickHandler], [DragHandler], [DropHandler], or
// [ZoomHandler], and declare resources to preload via [ResourceDeclarer].
//
// # Shapes and sprites
//
// Geometry is center-based: a [Rectangle] or [Circle] is positioned by its
// center, so translation and rotation never change which point is the
// shape's origin. Shapes answer Contains and Collides queries — collision
// uses the Separating Axis Theorem for rectangle pairs and distance tests
// otherwise, with inclusive bounds throughout.
//
// A [Sprite] pairs a shape with a draw order index. The engine's [Stage]
// re-sorts the live sprite set only on ticks where something changed;
// mutate a sprite's index directly and call [Stage.ForceHierarchyUpdate].
//
// # Coordinates
//
// Scenes are a fixed logical size; the engine letterboxes them onto
// whatever window size the host provides and maps pointer input back into
// scene coordinates. Input landing in the letterbox bars is ignored.
//
// [Ebitengine]: https://ebitengine.org
package bramble

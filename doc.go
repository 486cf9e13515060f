/*
Package ecss styles a mutable scene graph with a subset of CSS.

Stylesheets are parsed into rules (package cssom), whose selectors
(package selector) are matched against the subtree of the node owning a
stylesheet (package matching). Declared values are parsed once per
stylesheet content and applied to matched nodes in ascending order of
selector specificity (package styling). The engine watches the nodes it
examined while matching and re-styles an owner whenever a relevant
component of one of them changes, or whenever one of its stylesheets is
re-loaded (package asset).

A minimal host looks like this:

	sc := scene.New()
	window := sc.Spawn(0, scene.With("window"))
	...
	engine := ecss.New(sc)
	h, _ := engine.Store().Load("ui/main.css")
	engine.Attach(window, h)
	for {
	    sc.Advance()
	    // mutate the scene
	    engine.Tick()
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ecss

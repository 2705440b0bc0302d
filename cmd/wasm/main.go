//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/vectorlab/vectorlab/backend-go/internal/engine"
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

var eng *engine.Engine

func main() {
	eng = engine.New()

	// Create the engine API object
	vectorlabEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	vectorlabEngine.Set("loadDocument", js.FuncOf(loadDocument))
	vectorlabEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	vectorlabEngine.Set("setViewport", js.FuncOf(setViewport))
	vectorlabEngine.Set("setSelection", js.FuncOf(setSelection))
	vectorlabEngine.Set("addShape", js.FuncOf(addShape))
	vectorlabEngine.Set("removeShape", js.FuncOf(removeShape))
	vectorlabEngine.Set("setShapeStyle", js.FuncOf(setShapeStyle))
	vectorlabEngine.Set("setShapePoints", js.FuncOf(setShapePoints))
	vectorlabEngine.Set("dragPoint", js.FuncOf(dragPoint))

	// --- Queries (frontend ← backend) ---
	vectorlabEngine.Set("render", js.FuncOf(render))
	vectorlabEngine.Set("controlPositions", js.FuncOf(controlPositions))
	vectorlabEngine.Set("hitTest", js.FuncOf(hitTest))
	vectorlabEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	vectorlabEngine.Set("getDocument", js.FuncOf(getDocument))
	vectorlabEngine.Set("getSelection", js.FuncOf(getSelection))

	// Register on global scope
	js.Global().Set("vectorlabEngine", vectorlabEngine)

	// Signal that WASM is ready
	js.Global().Set("vectorlabWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.LoadDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	drawingID := "draw_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		drawingID = args[0].String()
	}

	eng.LoadSampleDocument(drawingID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 6 {
		return nil
	}
	var m geom.Matrix2D
	for i := 0; i < 6; i++ {
		m[i] = args[i].Float()
	}
	eng.SetViewport(m)
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func addShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}

	id := args[0].String()

	var points []geom.Point
	if err := json.Unmarshal([]byte(args[1].String()), &points); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	style := shape.DefaultStyle()
	if err := json.Unmarshal([]byte(args[2].String()), &style); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	if err := eng.AddShape(id, points, style); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func removeShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.RemoveShape(args[0].String())
	return nil
}

func setShapeStyle(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}

	var patch shape.StylePatch
	if err := json.Unmarshal([]byte(args[1].String()), &patch); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	if err := eng.SetShapeStyle(args[0].String(), patch); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setShapePoints(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}

	var points []geom.Point
	if err := json.Unmarshal([]byte(args[1].String()), &points); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	if err := eng.SetShapePoints(args[0].String(), points); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func dragPoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}

	id := args[0].String()
	index := args[1].Int()
	x := args[2].Float()
	y := args[3].Float()

	if err := eng.DragPoint(id, index, x, y); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func controlPositions(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("[]")
	}
	return js.ValueOf(eng.ControlPositions(args[0].String()))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

package canopy

import "fmt"

// ensurePipelines creates the image and text pipelines once.
func (c *Context) ensurePipelines() error {
	if c.pipelines[RenderImage] != 0 {
		return nil
	}
	for _, d := range [...]struct {
		typ  RenderType
		desc PipelineDesc
	}{
		{RenderImage, PipelineDesc{Label: "ui-image", Shader: "ui_image", Blend: BlendAlpha, VertexStride: vertexStride}},
		{RenderText, PipelineDesc{Label: "ui-text", Shader: "ui_text", Blend: BlendAlpha, VertexStride: vertexStride}},
	} {
		id, err := c.renderer.CreatePipeline(d.desc)
		if err != nil {
			return fmt.Errorf("create %s pipeline: %w", d.desc.Label, err)
		}
		c.pipelines[d.typ] = id
	}
	return nil
}

// Render records the draw list into cl in paint order. The pipeline is
// switched only where the render type changes along the list. Widgets whose
// GPU data is not ready yet are skipped for this frame. Panics on a widget
// with an invalid render type.
func (c *Context) Render(cl CommandList) {
	c.stats.DrawCalls, c.stats.PipelineChanges = 0, 0
	if err := c.ensurePipelines(); err != nil {
		Logger().Warn("canopy: render", "err", err)
		return
	}

	current := RenderNone
	for _, e := range c.drawList {
		if !c.world.Valid(e) {
			continue
		}
		en := c.world.Entry(e)
		r := RenderableComponent.Get(en)
		switch r.Type {
		case RenderNone:
			continue
		case RenderImage, RenderText:
		default:
			panic(fmt.Sprintf("canopy: widget %v has invalid render type %d", e, r.Type))
		}
		if r.Constants == 0 || r.Vertices == 0 || r.IndexCount == 0 || c.quadIdx == 0 {
			continue
		}

		if r.Type != current {
			if current != RenderNone {
				cl.EndPipeline()
			}
			cl.BeginPipeline(c.pipelines[r.Type])
			cl.SetIndexBuffer(c.quadIdx)
			current = r.Type
			c.stats.PipelineChanges++
		}

		set := DescriptorSet{
			Constants:      r.Constants,
			Vertices:       r.Vertices,
			TextureIndices: r.TextureIndices,
			Texture:        r.Texture,
		}
		if r.Type == RenderText {
			set.Font = TextComponent.Get(en).font
		}
		cl.BindDescriptorSet(set)
		cl.DrawIndexed(r.IndexCount, 0)
		c.stats.DrawCalls++
	}
	if current != RenderNone {
		cl.EndPipeline()
	}
}

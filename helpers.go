// Copyright (c) 2014, David Kitchen <david@buro9.com>
//
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
//
// * Neither the name of the organisation (Microcosm) nor the names of its
//   contributors may be used to endorse or promote products derived from
//   this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package greywater

var (
	// defElements is the curated set of markup-significant-but-safe tags:
	// text containers, lists, tables, inline formatting and media display
	// tags. Script-execution tags (script, style, object, embed, param),
	// form and control-surface tags (form, input, button, select, option,
	// textarea) and document or layout hijack tags (link, base, basefont,
	// frameset, frame) are deliberately absent: they are unwrapped, or for
	// frame removed with the whole subtree.
	defElements = [...]string{
		"a",
		"abbr",
		"acronym",
		"address",
		"area",
		"article",
		"aside",
		"audio",
		"b",
		"bdi",
		"bdo",
		"big",
		"blockquote",
		"br",
		"caption",
		"center",
		"cite",
		"code",
		"col",
		"colgroup",
		"dd",
		"del",
		"details",
		"dfn",
		"dialog",
		"dir",
		"div",
		"dl",
		"dt",
		"em",
		"figcaption",
		"figure",
		"font",
		"footer",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"header",
		"hgroup",
		"hr",
		"i",
		"img",
		"ins",
		"kbd",
		"label",
		"li",
		"main",
		"map",
		"mark",
		"menu",
		"nav",
		"ol",
		"p",
		"picture",
		"pre",
		"q",
		"rp",
		"rt",
		"ruby",
		"s",
		"samp",
		"section",
		"small",
		"source",
		"span",
		"strike",
		"strong",
		"sub",
		"summary",
		"sup",
		"table",
		"tbody",
		"td",
		"tfoot",
		"th",
		"thead",
		"time",
		"tr",
		"track",
		"tt",
		"u",
		"ul",
		"var",
		"video",
		"wbr",
	}

	// defAttrs is the global attribute allowlist: presentational and
	// descriptive attributes that carry no script or selector surface.
	// id, name and style are hardwired out (see dangerousAttrs); event
	// handlers are rejected by not being listed anywhere.
	defAttrs = [...]string{
		"abbr",
		"accesskey",
		"align",
		"alt",
		"autoplay",
		"axis",
		"bgcolor",
		"border",
		"cellpadding",
		"cellspacing",
		"class",
		"clear",
		"color",
		"cols",
		"colspan",
		"compact",
		"controls",
		"coords",
		"datetime",
		"default",
		"dir",
		"download",
		"face",
		"headers",
		"height",
		"hidden",
		"hreflang",
		"hspace",
		"ismap",
		"itemprop",
		"itemscope",
		"kind",
		"label",
		"lang",
		"language",
		"loop",
		"media",
		"muted",
		"nohref",
		"nowrap",
		"open",
		"preload",
		"rel",
		"rev",
		"role",
		"rows",
		"rowspan",
		"rules",
		"scope",
		"scrolling",
		"shape",
		"size",
		"sizes",
		"span",
		"srclang",
		"start",
		"summary",
		"tabindex",
		"target",
		"title",
		"translate",
		"type",
		"usemap",
		"valign",
		"value",
		"vspace",
		"width",
	}

	// defURIAttrs are the attributes whose value is a single URI and is
	// therefore routed through the URL sanitizer. xlink:href is covered by
	// namespace resolution against "href".
	defURIAttrs = [...]string{
		"background",
		"cite",
		"href",
		"itemtype",
		"longdesc",
		"poster",
		"src",
	}

	// defURLSchemes are the schemes considered non-executable and safe to
	// render unmodified. Everything else, javascript: and data: included,
	// is rewritten to the inert "unsafe:" form. Schemeless values always
	// pass.
	defURLSchemes = [...]string{
		"http",
		"https",
		"ftp",
		"mailto",
		"tel",
		"file",
	}

	// defSkipContent lists disallowed elements removed together with their
	// entire subtree. frame is a structural hijack vector, not merely an
	// unsafe leaf; its content must not leak into the output the way
	// unwrapped children do.
	defSkipContent = [...]string{
		"frame",
	}
)

// Default returns the standard fragment sanitization policy: safe text,
// list, table, formatting and media-display markup with descriptive
// attributes, URI values restricted to non-executable schemes.
func Default() *Policy {
	p := NewPolicy().
		AllowElements(defElements[:]...).
		AllowAttrs(defAttrs[:]...).
		AllowURLAttrs(defURIAttrs[:]...).
		AllowSrcSetAttrs("srcset").
		AllowURLSchemes(defURLSchemes[:]...).
		SkipElementsContent(defSkipContent[:]...)
	return p
}

// Strict returns a policy that allows only basic text formatting with no
// attributes at all, suitable for one-line user content such as comments
// or usernames.
func Strict() *Policy {
	return NewPolicy().
		AllowElements("b", "i", "em", "strong", "br", "p", "ul", "ol", "li").
		SkipElementsContent(defSkipContent[:]...)
}

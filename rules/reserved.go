package rules

import "strings"

// Members of HTMLElement.prototype. dataset, hidden, spellcheck,
// autocapitalize and inputMode are left out on purpose: Stencil components
// commonly reflect them as props.
var htmlElementKeys = []string{
	"title", "lang", "translate", "dir", "tabIndex", "accessKey",
	"draggable", "contentEditable", "isContentEditable", "offsetParent", "offsetTop", "offsetLeft",
	"offsetWidth", "offsetHeight", "style", "innerText", "outerText", "oncopy",
	"oncut", "onpaste", "onabort", "onblur", "oncancel", "oncanplay",
	"oncanplaythrough", "onchange", "onclick", "onclose", "oncontextmenu", "oncuechange",
	"ondblclick", "ondrag", "ondragend", "ondragenter", "ondragleave", "ondragover",
	"ondragstart", "ondrop", "ondurationchange", "onemptied", "onended", "onerror",
	"onfocus", "oninput", "oninvalid", "onkeydown", "onkeypress", "onkeyup",
	"onload", "onloadeddata", "onloadedmetadata", "onloadstart", "onmousedown", "onmouseenter",
	"onmouseleave", "onmousemove", "onmouseout", "onmouseover", "onmouseup", "onmousewheel",
	"onpause", "onplay", "onplaying", "onprogress", "onratechange", "onreset",
	"onresize", "onscroll", "onseeked", "onseeking", "onselect", "onstalled",
	"onsubmit", "onsuspend", "ontimeupdate", "ontoggle", "onvolumechange", "onwaiting",
	"onwheel", "onauxclick", "ongotpointercapture", "onlostpointercapture", "onpointerdown", "onpointermove",
	"onpointerup", "onpointercancel", "onpointerover", "onpointerout", "onpointerenter", "onpointerleave",
	"onselectstart", "onselectionchange", "nonce", "click", "focus", "blur",
}

var elementKeys = []string{
	"namespaceURI", "prefix", "localName", "tagName",
	"id", "className", "classList", "slot",
	"attributes", "shadowRoot", "assignedSlot", "innerHTML",
	"outerHTML", "scrollTop", "scrollLeft", "scrollWidth",
	"scrollHeight", "clientTop", "clientLeft", "clientWidth",
	"clientHeight", "attributeStyleMap", "onbeforecopy", "onbeforecut",
	"onbeforepaste", "onsearch", "previousElementSibling", "nextElementSibling",
	"children", "firstElementChild", "lastElementChild", "childElementCount",
	"onfullscreenchange", "onfullscreenerror", "onwebkitfullscreenchange", "onwebkitfullscreenerror",
	"setPointerCapture", "releasePointerCapture", "hasPointerCapture", "hasAttributes",
	"getAttributeNames", "getAttribute", "getAttributeNS", "setAttribute",
	"setAttributeNS", "removeAttribute", "removeAttributeNS", "hasAttribute",
	"hasAttributeNS", "toggleAttribute", "getAttributeNode", "getAttributeNodeNS",
	"setAttributeNode", "setAttributeNodeNS", "removeAttributeNode", "closest",
	"matches", "webkitMatchesSelector", "attachShadow", "getElementsByTagName",
	"getElementsByTagNameNS", "getElementsByClassName", "insertAdjacentElement", "insertAdjacentText",
	"insertAdjacentHTML", "requestPointerLock", "getClientRects", "getBoundingClientRect",
	"scrollIntoView", "scroll", "scrollTo", "scrollBy",
	"scrollIntoViewIfNeeded", "animate", "computedStyleMap", "before",
	"after", "replaceWith", "remove", "prepend",
	"append", "querySelector", "querySelectorAll", "requestFullscreen",
	"webkitRequestFullScreen", "webkitRequestFullscreen", "part", "createShadowRoot",
	"getDestinationInsertionPoints",
}

var nodeKeys = []string{
	"ELEMENT_NODE", "ATTRIBUTE_NODE", "TEXT_NODE",
	"CDATA_SECTION_NODE", "ENTITY_REFERENCE_NODE", "ENTITY_NODE",
	"PROCESSING_INSTRUCTION_NODE", "COMMENT_NODE", "DOCUMENT_NODE",
	"DOCUMENT_TYPE_NODE", "DOCUMENT_FRAGMENT_NODE", "NOTATION_NODE",
	"DOCUMENT_POSITION_DISCONNECTED", "DOCUMENT_POSITION_PRECEDING", "DOCUMENT_POSITION_FOLLOWING",
	"DOCUMENT_POSITION_CONTAINS", "DOCUMENT_POSITION_CONTAINED_BY", "DOCUMENT_POSITION_IMPLEMENTATION_SPECIFIC",
	"nodeType", "nodeName", "baseURI",
	"isConnected", "ownerDocument", "parentNode",
	"parentElement", "childNodes", "firstChild",
	"lastChild", "previousSibling", "nextSibling",
	"nodeValue", "textContent", "hasChildNodes",
	"getRootNode", "normalize", "cloneNode",
	"isEqualNode", "isSameNode", "compareDocumentPosition",
	"contains", "lookupPrefix", "lookupNamespaceURI",
	"isDefaultNamespace", "insertBefore", "appendChild",
	"replaceChild", "removeChild",
}

// Attributes the JSX runtime consumes before they reach the element.
var jsxKeys = []string{
	"ref", "key",
}

var reservedMembers = func() map[string]bool {
	set := make(map[string]bool)
	for _, list := range [][]string{htmlElementKeys, elementKeys, nodeKeys, jsxKeys} {
		for _, key := range list {
			set[strings.ToLower(key)] = true
		}
	}
	return set
}()

// isReservedMember reports whether name collides, case-insensitively, with
// a member every custom element inherits.
func isReservedMember(name string) bool {
	return reservedMembers[strings.ToLower(name)]
}

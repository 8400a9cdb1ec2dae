package rodhost

// formsScript serialises forms, optionally only those inside (or matching)
// the selector passed as first argument. Attributes are read with
// getAttribute so controls named "id" or "name" cannot shadow them.
const formsScript = `(selector) => {
	const roots = selector ? Array.from(document.querySelectorAll(selector)) : [document];
	const seen = new Set();
	const forms = [];
	for (const root of roots) {
		if (root instanceof HTMLFormElement && !seen.has(root)) {
			seen.add(root);
			forms.push(root);
		}
		for (const form of root.querySelectorAll("form")) {
			if (!seen.has(form)) {
				seen.add(form);
				forms.push(form);
			}
		}
	}
	const controls = ["INPUT", "TEXTAREA", "SELECT"];
	return JSON.stringify(forms.map((form) => ({
		id: form.getAttribute("id") || "",
		name: form.getAttribute("name") || "",
		classes: Array.from(form.classList),
		fields: Array.from(form.elements)
			.filter((el) => controls.includes(el.tagName))
			.map((el) => ({
				id: el.getAttribute("id") || "",
				name: el.getAttribute("name") || "",
				type: String(el.type || "").toLowerCase(),
				classes: Array.from(el.classList),
				value: el.tagName === "SELECT" && el.multiple
					? Array.from(el.selectedOptions).map((o) => o.value).join(",")
					: String(el.value ?? ""),
				checked: !!el.checked,
			})),
	})));
}`

// submitWatchScript records submissions that were not cancelled. It listens
// on window in the bubbling phase so form handlers calling preventDefault
// run first.
const submitWatchScript = `() => {
	if (window.__formdirtyWatching) return;
	window.__formdirtyWatching = true;
	window.__formdirtySubmitted = false;
	window.addEventListener("submit", (event) => {
		if (!event.defaultPrevented) {
			window.__formdirtySubmitted = true;
		}
	});
}`

const submittedScript = `() => window.__formdirtySubmitted === true`

const resetSubmittedScript = `() => { window.__formdirtySubmitted = false; }`

const tinyMCEDetectScript = `(id) => !!(window.tinymce && typeof tinymce.get === "function" && tinymce.get(id))`

const tinyMCEDirtyScript = `(id) => {
	const editor = window.tinymce && tinymce.get(id);
	return editor ? !!editor.isDirty() : true;
}`

const ckeditorDetectScript = `(id) => !!(window.CKEDITOR && CKEDITOR.instances && CKEDITOR.instances[id])`

const ckeditorDirtyScript = `(id) => {
	const editor = window.CKEDITOR && CKEDITOR.instances && CKEDITOR.instances[id];
	return editor ? !!editor.checkDirty() : true;
}`

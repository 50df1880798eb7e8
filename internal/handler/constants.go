package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixCreate is the suffix for create routes.
	RouteSuffixCreate = "/create"
	// RouteParamID constrains the id segment to positive integers; other
	// segments fall through to 404.
	RouteParamID = "/{id:[1-9][0-9]*}"
	// RouteParamIDEdit is the edit route pattern.
	RouteParamIDEdit = RouteParamID + "/edit"
	// RouteParamIDDelete is the delete confirmation route pattern.
	RouteParamIDDelete = RouteParamID + "/delete"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteCategories is the category section route.
	RouteCategories = "/category"
	// RouteContacts is the contact section route.
	RouteContacts = "/contact"
	// RouteEvents is the event section route.
	RouteEvents = "/event"
)

// Query parameter names.
const (
	// QueryParamPage selects the listing page.
	QueryParamPage = "page"
	// QueryParamCategoryFilter narrows the event listing to one category.
	QueryParamCategoryFilter = "filters_category_id"
)

package blogservice

// CanView reports whether a caller may read the blog. Published blogs are public;
// drafts are visible only to their author. A nil viewerID means no identity.
func CanView(viewerID *int64, blog *Blog) bool {
	if blog.State == StatePublished {
		return true
	}

	return viewerID != nil && *viewerID == blog.Author.ID
}

// CanMutate reports whether a caller may update, publish or delete the blog. Only the
// author may.
func CanMutate(viewerID *int64, blog *Blog) bool {
	return viewerID != nil && *viewerID == blog.Author.ID
}

package api

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCreatePost_SlugDeduplication(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	_, slug := s.createPost(t, token, "Hello World", "body", false)
	if slug != "hello-world" {
		t.Fatalf("first slug = %q, want hello-world", slug)
	}

	_, slug = s.createPost(t, token, "Hello World", "body", false)
	if slug != "hello-world-1" {
		t.Fatalf("second slug = %q, want hello-world-1", slug)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/posts", token, map[string]any{"title": "No content"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/posts", "", map[string]any{"title": "t", "content": "c"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: status = %d, want 401", rec.Code)
	}
}

func TestListPosts_ExcludesDrafts(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	s.createPost(t, token, "Public Post", "visible", false)
	s.createPost(t, token, "Hidden Draft", "invisible", true)

	rec := s.do(t, http.MethodGet, "/api/posts", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	body := decodeBody(t, rec)
	posts, _ := body["posts"].([]any)
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1", len(posts))
	}
	post, _ := posts[0].(map[string]any)
	if post["title"] != "Public Post" {
		t.Fatalf("unexpected post: %v", post)
	}

	pagination, _ := body["pagination"].(map[string]any)
	if pagination["total"].(float64) != 1 || pagination["pages"].(float64) != 1 {
		t.Fatalf("unexpected pagination: %v", pagination)
	}

	// The owner still sees the draft under my-posts
	rec = s.do(t, http.MethodGet, "/api/posts/user/my-posts", token, nil)
	body = decodeBody(t, rec)
	posts, _ = body["posts"].([]any)
	if len(posts) != 2 {
		t.Fatalf("my-posts len = %d, want 2", len(posts))
	}
}

func TestGetPostBySlug_CountsViews(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")
	_, slug := s.createPost(t, token, "Counted", "body", false)

	var views float64
	for i := 1; i <= 3; i++ {
		rec := s.do(t, http.MethodGet, "/api/posts/"+slug, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get by slug: status %d", rec.Code)
		}
		post, _ := decodeBody(t, rec)["post"].(map[string]any)
		views = post["views"].(float64)
		if int(views) != i {
			t.Fatalf("views after %d reads = %v", i, views)
		}
		if author, _ := post["author"].(map[string]any); author["name"] != "Ann" {
			t.Fatalf("author not populated: %v", post["author"])
		}
	}

	rec := s.do(t, http.MethodGet, "/api/posts/no-such-slug", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing slug: status = %d, want 404", rec.Code)
	}
}

func TestLikePost(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")
	postID, _ := s.createPost(t, token, "Likeable", "body", false)

	// Likes require no authentication and are not deduplicated
	var likes float64
	for i := 1; i <= 3; i++ {
		rec := s.do(t, http.MethodPatch, fmt.Sprintf("/api/posts/%s/like", postID), "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("like: status %d body %s", rec.Code, rec.Body.String())
		}
		likes = decodeBody(t, rec)["likes"].(float64)
	}
	if int(likes) != 3 {
		t.Fatalf("likes = %v, want 3", likes)
	}

	rec := s.do(t, http.MethodPatch, "/api/posts/00000000-0000-0000-0000-000000000000/like", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing post: status = %d, want 404", rec.Code)
	}
}

func TestUpdatePost_OwnershipAndSlugRegeneration(t *testing.T) {
	s := newTestServer(t, nil)
	annToken, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")
	bobToken, _ := s.registerUser(t, "Bob", "bob@x.com", "secret2")

	postID, _ := s.createPost(t, annToken, "Original Title", "body", false)

	// Only the author may update
	rec := s.do(t, http.MethodPut, "/api/posts/"+postID, bobToken, map[string]any{"title": "Stolen"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-author update: status = %d, want 403", rec.Code)
	}

	// A title change regenerates the slug
	rec = s.do(t, http.MethodPut, "/api/posts/"+postID, annToken, map[string]any{"title": "Brand New Title"})
	if rec.Code != http.StatusOK {
		t.Fatalf("author update: status %d body %s", rec.Code, rec.Body.String())
	}
	post, _ := decodeBody(t, rec)["post"].(map[string]any)
	if post["slug"] != "brand-new-title" {
		t.Fatalf("slug = %v, want brand-new-title", post["slug"])
	}

	// Partial update leaves other fields alone
	rec = s.do(t, http.MethodPut, "/api/posts/"+postID, annToken, map[string]any{"tags": "go,web"})
	post, _ = decodeBody(t, rec)["post"].(map[string]any)
	if post["title"] != "Brand New Title" || post["tags"] != "go,web" {
		t.Fatalf("partial update wrong: %v", post)
	}
}

func TestDeletePost_CascadesAndChecksRole(t *testing.T) {
	s := newTestServer(t, nil)
	annToken, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")
	bobToken, _ := s.registerUser(t, "Bob", "bob@x.com", "secret2")
	adminToken, _ := s.registerUser(t, "Root", "root@x.com", "secret3")
	s.promoteToAdmin(t, "root@x.com")

	postID, _ := s.createPost(t, annToken, "Doomed", "body", false)

	rec := s.do(t, http.MethodPost, "/api/comments", bobToken, map[string]any{
		"postId":  postID,
		"content": "nice post",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment: status %d body %s", rec.Code, rec.Body.String())
	}

	// A non-author, non-admin caller may not delete
	rec = s.do(t, http.MethodDelete, "/api/posts/"+postID, bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-author delete: status = %d, want 403", rec.Code)
	}

	// An admin may, and the comments go with the post
	rec = s.do(t, http.MethodDelete, "/api/posts/"+postID, adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/comments/"+postID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("comments for deleted post: status = %d, want 404", rec.Code)
	}
}

func TestToggleDraft(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")
	postID, _ := s.createPost(t, token, "Flippable", "body", false)

	rec := s.do(t, http.MethodPatch, fmt.Sprintf("/api/posts/%s/draft", postID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: status %d body %s", rec.Code, rec.Body.String())
	}
	post, _ := decodeBody(t, rec)["post"].(map[string]any)
	if post["isDraft"] != true {
		t.Fatalf("isDraft = %v, want true", post["isDraft"])
	}

	// Now hidden from the public listing
	rec = s.do(t, http.MethodGet, "/api/posts", "", nil)
	posts, _ := decodeBody(t, rec)["posts"].([]any)
	if len(posts) != 0 {
		t.Fatalf("unpublished post still listed: %v", posts)
	}

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/api/posts/%s/draft", postID), token, nil)
	post, _ = decodeBody(t, rec)["post"].(map[string]any)
	if post["isDraft"] != false {
		t.Fatalf("isDraft = %v, want false after second toggle", post["isDraft"])
	}
}

func TestRouteNotFound_ReturnsJSON(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/definitely/not/a/route", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Route not found" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

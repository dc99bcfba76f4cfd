/**
 * Copyright (c) 2020, The NodeQL Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package nodeql_test

// The blog domain used across the execution tests: posts carrying comments and likes, resolved
// from an in-memory store. Field resolution is exercised both through the default reflection
// resolver (methods like Title, PublishedAt) and through explicit resolver overrides
// (average_rating).

import (
	"fmt"
	"time"

	"github.com/cclow/nodeql"
)

type blogPost struct {
	id          int
	title       string
	content     string
	publishedAt time.Time
	comments    []*blogComment
	likes       []*blogLike
}

func (p *blogPost) ID() int                  { return p.id }
func (p *blogPost) Title() string            { return p.title }
func (p *blogPost) Content() string          { return p.content }
func (p *blogPost) PublishedAt() time.Time   { return p.publishedAt }
func (p *blogPost) Comments() []*blogComment { return p.comments }
func (p *blogPost) Likes() []*blogLike       { return p.likes }

type blogComment struct {
	id      int
	content string
	rating  int
	post    *blogPost
}

func (c *blogComment) ID() int         { return c.id }
func (c *blogComment) Content() string { return c.content }
func (c *blogComment) Rating() int     { return c.rating }
func (c *blogComment) Letters() string { return c.content }
func (c *blogComment) Post() *blogPost { return c.post }

type blogLike struct {
	id  int
	who string
}

func (l *blogLike) ID() int     { return l.id }
func (l *blogLike) Who() string { return l.who }

type viewerContext struct {
	Viewer string
	Admin  bool
}

// blogStore holds the fixture data from the concrete scenarios: Post 123 with comments 444/445
// and likes 991/992.
type blogStore struct {
	posts    map[int]*blogPost
	comments map[int]*blogComment
}

func newBlogStore() *blogStore {
	post := &blogPost{
		id:          123,
		title:       "My great post",
		content:     "So many great things",
		publishedAt: time.Date(2010, time.January, 4, 0, 0, 0, 0, time.UTC),
	}
	agree := &blogComment{id: 444, content: "I agree", rating: 5, post: post}
	disagree := &blogComment{id: 445, content: "I disagree", rating: 1, post: post}
	post.comments = []*blogComment{agree, disagree}
	post.likes = []*blogLike{
		{id: 991, who: "alice"},
		{id: 992, who: "bob"},
	}

	return &blogStore{
		posts:    map[int]*blogPost{post.id: post},
		comments: map[int]*blogComment{agree.id: agree, disagree.id: disagree},
	}
}

// newBlogSchema builds the schema the execution tests run against.
func newBlogSchema(store *blogStore) *nodeql.Schema {
	schema := nodeql.NewSchema()

	schema.MustRegisterType(nodeql.NodeTypeConfig{
		Name: "post",
		Fields: nodeql.Fields{
			nodeql.Field("string", "title"),
			nodeql.Field("string", "content"),
			nodeql.Field("date", "published_at"),
			nodeql.Field("comments", "comments"),
			nodeql.Field("likes", "likes"),
		},
	})

	schema.MustRegisterType(nodeql.NodeTypeConfig{
		Name: "comment",
		Fields: nodeql.Fields{
			nodeql.Field("string", "content"),
			nodeql.Field("number", "rating"),
			nodeql.Field("string", "letters"),
			nodeql.Field("post", "post"),
		},
	})

	schema.MustRegisterType(nodeql.NodeTypeConfig{
		Name:          "comments",
		ConnectionFor: "comment",
		Fields: nodeql.Fields{
			nodeql.Field("number", "average_rating", nodeql.WithResolverFunc(
				func(target interface{}, args []interface{}, info nodeql.ResolveInfo) (interface{}, error) {
					elements := target.([]interface{})
					if len(elements) == 0 {
						return 0, nil
					}
					sum := 0
					for _, element := range elements {
						sum += element.(*blogComment).Rating()
					}
					return sum / len(elements), nil
				})),
		},
	})

	schema.MustRegisterType(nodeql.NodeTypeConfig{
		Name: "like",
		Fields: nodeql.Fields{
			nodeql.Field("string", "who"),
		},
	})

	schema.MustRegisterType(nodeql.NodeTypeConfig{
		Name:          "likes",
		ConnectionFor: "like",
	})

	schema.MustRegisterType(nodeql.NodeTypeConfig{
		Name: "context",
		Fields: nodeql.Fields{
			nodeql.Field("string", "viewer"),
			nodeql.Field("boolean", "admin"),
		},
	})

	schema.MustRegisterRootCall(nodeql.RootCallConfig{
		Name: "post",
		Arguments: []nodeql.ArgumentConfig{
			{Name: "id", Type: "number"},
		},
		Returns: []nodeql.ReturnConfig{
			{Key: "post", Type: "post"},
		},
		Resolver: nodeql.RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("post requires exactly one id")
			}
			id, ok := args[0].(int)
			if !ok {
				return nil, fmt.Errorf("post requires a numeric id")
			}
			post, ok := store.posts[id]
			if !ok {
				return nil, fmt.Errorf("no post with id %d", id)
			}
			return post, nil
		}),
	})

	schema.MustRegisterRootCall(nodeql.RootCallConfig{
		Name: "comment",
		Arguments: []nodeql.ArgumentConfig{
			{Name: "ids", Type: "number"},
		},
		Returns: []nodeql.ReturnConfig{
			{Key: "comment", Type: "comment"},
		},
		Resolver: nodeql.RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
			comments := make([]interface{}, 0, len(args))
			for _, arg := range args {
				id, ok := arg.(int)
				if !ok {
					return nil, fmt.Errorf("comment requires numeric ids")
				}
				comment, ok := store.comments[id]
				if !ok {
					return nil, fmt.Errorf("no comment with id %d", id)
				}
				comments = append(comments, comment)
			}
			if len(comments) == 1 {
				return comments[0], nil
			}
			return comments, nil
		}),
	})

	return schema
}

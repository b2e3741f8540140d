package domain

import "sort"

// UpsertTopic applies the collection mutation rules: replace-by-id keeps the
// original CreatedAt, a new topic is prepended, the result is re-sorted by
// CreatedAt descending and truncated to MaxTopics. The input slice is not
// modified.
func UpsertTopic(topics []*Topic, t *Topic) []*Topic {
	out := make([]*Topic, 0, len(topics)+1)

	replaced := false
	for _, existing := range topics {
		if existing.ID == t.ID {
			updated := *t
			updated.CreatedAt = existing.CreatedAt
			out = append(out, &updated)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		fresh := *t
		out = append([]*Topic{&fresh}, out...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > MaxTopics {
		out = out[:MaxTopics]
	}
	return out
}

// RemoveTopic filters out the matching topic. Removing an absent id is a
// no-op, not an error.
func RemoveTopic(topics []*Topic, id TopicID) []*Topic {
	out := make([]*Topic, 0, len(topics))
	for _, t := range topics {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
